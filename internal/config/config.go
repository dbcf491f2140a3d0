package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreBackendDynamoDB = "dynamodb"
	StoreBackendMongo    = "mongo"

	ProviderSafepay     = "safepay"
	ProviderMercadoPago = "mercadopago"
)

type Config struct {
	// Server
	Port        string
	Env         string
	APIBasePath string

	Store     StoreConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Gateway   GatewayConfig
	Pricing   PricingConfig
	RateLimit RateLimitConfig
	NewRelic  NewRelicConfig
}

type StoreConfig struct {
	Backend string

	AWSRegion          string
	DynamoDBEndpoint   string
	PaymentsTable      string
	ListingDraftsTable string
	CarsTable          string
	UsersTable         string
	IdempotencyTable   string

	MongoURI      string
	MongoDatabase string
}

// RedisConfig is optional: an empty URL disables the submission lock and rate limiting.
type RedisConfig struct {
	URL      string
	Password string
}

func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

type AuthConfig struct {
	JWTSecret string
}

// GatewayConfig is injected into the gateway adapters at construction.
// SigningSecret may be empty, in which case webhook calls are trusted
// without verification.
type GatewayConfig struct {
	Provider      string
	SigningSecret string
	APIKey        string
	BaseURL       string
	FrontendURL   string
	BackendURL    string
	AccessToken   string
	Currency      string
	Timeout       time.Duration
	MockMode      bool
}

// NotifyURL is the webhook address handed to the gateway.
func (g GatewayConfig) NotifyURL() string {
	return strings.TrimRight(g.BackendURL, "/") + "/api/payments/webhook"
}

func (g GatewayConfig) SuccessURL(orderID string) string {
	return strings.TrimRight(g.FrontendURL, "/") + "/payment/success?orderId=" + orderID
}

func (g GatewayConfig) FailureURL(orderID string) string {
	return strings.TrimRight(g.FrontendURL, "/") + "/payment/failed?orderId=" + orderID
}

// PricingConfig holds fees in whole currency units, tolerance in paise.
type PricingConfig struct {
	ListingFee             int64
	FeatureFee             int64
	AdFee                  int64
	MembershipBasicPrice   int64
	MembershipPremiumPrice int64
	AmountToleranceInPaise int64
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type NewRelicConfig struct {
	Enabled    bool
	LicenseKey string
	AppName    string
}

// Load reads the environment. .env files are loaded by godotenv/autoload in
// cmd/api before this runs.
func Load() (*Config, error) {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		APIBasePath: getEnv("API_BASE_PATH", "/api"),

		Store: StoreConfig{
			Backend:            strings.ToLower(getEnv("STORE_BACKEND", StoreBackendDynamoDB)),
			AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
			DynamoDBEndpoint:   getEnv("DYNAMODB_ENDPOINT", ""),
			PaymentsTable:      getEnv("PAYMENTS_TABLE", "payments"),
			ListingDraftsTable: getEnv("LISTING_DRAFTS_TABLE", "listing_drafts"),
			CarsTable:          getEnv("CARS_TABLE", "cars"),
			UsersTable:         getEnv("USERS_TABLE", "users"),
			IdempotencyTable:   getEnv("IDEMPOTENCY_TABLE", "payment_idempotency_keys"),
			MongoURI:           getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			MongoDatabase:      getEnv("MONGODB_DATABASE", "car_marketplace"),
		},

		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},

		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},

		Gateway: GatewayConfig{
			Provider:      strings.ToLower(getEnv("PAYMENT_PROVIDER", ProviderSafepay)),
			SigningSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),
			APIKey:        getEnv("SAFEPAY_API_KEY", ""),
			BaseURL:       getEnv("SAFEPAY_BASE_URL", "https://sandbox.api.getsafepay.com"),
			FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
			BackendURL:    getEnv("BACKEND_URL", "http://localhost:8080"),
			AccessToken:   getEnv("MERCADOPAGO_ACCESS_TOKEN", ""),
			Currency:      getEnv("PAYMENT_CURRENCY", "PKR"),
			Timeout:       getEnvAsDuration("PAYMENT_GATEWAY_TIMEOUT", 10*time.Second),
			MockMode:      isTruthy(getEnv("PAYMENT_GATEWAY_MOCK", "")),
		},

		Pricing: PricingConfig{
			ListingFee:             getEnvAsInt64("LISTING_FEE", 100),
			FeatureFee:             getEnvAsInt64("FEATURE_FEE", 200),
			AdFee:                  getEnvAsInt64("AD_FEE", 200),
			MembershipBasicPrice:   getEnvAsInt64("MEMBERSHIP_BASIC_PRICE", 1000),
			MembershipPremiumPrice: getEnvAsInt64("MEMBERSHIP_PREMIUM_PRICE", 10000),
			AmountToleranceInPaise: getEnvAsInt64("AMOUNT_TOLERANCE_PAISE", 10),
		},

		RateLimit: RateLimitConfig{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 30),
			Window:   getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		},

		NewRelic: NewRelicConfig{
			Enabled:    getEnvAsBool("NEW_RELIC_ENABLED", false),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			AppName:    getEnv("NEW_RELIC_APP_NAME", "car-marketplace-payments"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
