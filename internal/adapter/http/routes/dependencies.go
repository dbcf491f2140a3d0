package routes

import (
	"context"
	"fmt"
	"log"
	"os"

	"car_marketplace/internal/adapter/persistence/mongodb"
	"car_marketplace/internal/adapter/persistence/repository"
	"car_marketplace/internal/config"
	"car_marketplace/internal/infrastructure/cache"
	"car_marketplace/internal/infrastructure/database"
	"car_marketplace/internal/infrastructure/payments"
	"car_marketplace/internal/usecase/interfaces"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
)

// Dependencies are the adapters the router wires into use cases. Lock,
// Redis and NewRelic may be nil.
type Dependencies struct {
	Payments interfaces.IPaymentRepository
	Drafts   interfaces.IListingDraftRepository
	Cars     interfaces.ICarRepository
	Users    interfaces.IUserRepository
	Gateway  interfaces.IPaymentGateway
	Lock     interfaces.ISubmissionLock
	Redis    *redis.Client
	NewRelic *newrelic.Application

	closers []func()
}

func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func buildDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	deps := &Dependencies{}

	if err := buildStores(ctx, cfg.Store, deps); err != nil {
		return nil, err
	}

	gateway, err := buildGateway(cfg.Gateway)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Gateway = gateway

	if cfg.Redis.Enabled() {
		rdb, err := database.NewRedis(cfg.Redis)
		if err != nil {
			log.Printf("[routes][redis] unavailable, running without submission lock and rate limiting err=%v", err)
		} else {
			deps.Redis = rdb.Client
			deps.Lock = cache.NewSubmissionLock(rdb.Client)
			deps.closers = append(deps.closers, func() { _ = rdb.Close() })
		}
	}

	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
			newrelic.ConfigInfoLogger(os.Stdout),
		)
		if err != nil {
			log.Printf("[routes][newrelic] init failed err=%v", err)
		} else {
			deps.NewRelic = app
		}
	}

	return deps, nil
}

func buildStores(ctx context.Context, cfg config.StoreConfig, deps *Dependencies) error {
	switch cfg.Backend {
	case config.StoreBackendMongo:
		client, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return err
		}
		deps.closers = append(deps.closers, func() { _ = client.Disconnect(context.Background()) })

		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		deps.Payments = mongodb.NewPaymentMongoRepository(db)
		deps.Drafts = mongodb.NewListingDraftMongoRepository(client, db)
		deps.Cars = mongodb.NewCarMongoRepository(db)
		deps.Users = mongodb.NewUserMongoRepository(db)

	case config.StoreBackendDynamoDB, "":
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return err
		}
		if cfg.DynamoDBEndpoint != "" {
			if err := database.EnsureTables(ctx, ddb, cfg); err != nil {
				return err
			}
		}
		deps.Payments = repository.NewPaymentDynamoRepository(ddb, cfg.PaymentsTable, cfg.IdempotencyTable)
		deps.Drafts = repository.NewListingDraftDynamoRepository(ddb, cfg.ListingDraftsTable, cfg.CarsTable)
		deps.Cars = repository.NewCarDynamoRepository(ddb, cfg.CarsTable)
		deps.Users = repository.NewUserDynamoRepository(ddb, cfg.UsersTable)

	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", cfg.Backend)
	}

	log.Printf("[routes][store] backend=%s", cfg.Backend)
	return nil
}

func buildGateway(cfg config.GatewayConfig) (interfaces.IPaymentGateway, error) {
	switch cfg.Provider {
	case config.ProviderMercadoPago:
		return payments.NewMercadoPagoGateway(cfg)
	case config.ProviderSafepay, "":
		return payments.NewSafepayGateway(cfg)
	default:
		return nil, fmt.Errorf("unknown PAYMENT_PROVIDER %q", cfg.Provider)
	}
}
