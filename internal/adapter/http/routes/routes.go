package routes

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	_ "car_marketplace/docs"
	"car_marketplace/internal/adapter/http/handlers"
	"car_marketplace/internal/adapter/http/middleware"
	"car_marketplace/internal/config"
	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	deps, err := buildDependencies(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Close()

	router := NewRouter(cfg, deps)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

// NewRouter assembles use cases and handlers over deps.
func NewRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, cfg, deps)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	policy := pricingPolicy(cfg.Pricing)
	pricing := usecase.NewPricingUseCase(deps.Cars, policy)
	checkout := usecase.NewPaymentCheckoutUseCase(usecase.PaymentCheckoutDeps{
		Payments:       deps.Payments,
		Drafts:         deps.Drafts,
		Cars:           deps.Cars,
		Users:          deps.Users,
		Gateway:        deps.Gateway,
		Lock:           deps.Lock,
		Pricing:        pricing,
		Policy:         policy,
		Currency:       cfg.Gateway.Currency,
		GatewayTimeout: cfg.Gateway.Timeout,
	})
	coordinator := usecase.NewPublishCoordinator(deps.Payments, deps.Drafts, deps.Cars, deps.Users, cfg.Pricing.AmountToleranceInPaise)
	webhook := usecase.NewWebhookUseCase(deps.Payments, deps.Drafts, deps.Gateway, coordinator)
	query := usecase.NewPaymentQueryUseCase(deps.Payments, deps.Drafts)

	paymentHandler := handlers.NewPaymentHandler(checkout, pricing, query)
	webhookHandler := handlers.NewWebhookHandler(webhook)
	adminHandler := handlers.NewAdminHandler(query)

	auth := middleware.JWTAuth(cfg.Auth.JWTSecret)
	var limiter gin.HandlerFunc
	if deps.Redis != nil {
		limiter = middleware.NewRateLimiter(deps.Redis, cfg.RateLimit.Requests, cfg.RateLimit.Window).Handler()
	}

	api := router.Group(cfg.APIBasePath)
	addPingRoutes(api)
	addPaymentRoutes(api, auth, limiter, paymentHandler, webhookHandler)
	addAdminRoutes(api, auth, adminHandler)

	return router
}

func setMiddlewares(router *gin.Engine, cfg *config.Config, deps *Dependencies) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(cors.New(corsConfig(cfg.Gateway.FrontendURL)))
	router.Use(middleware.NewRelic(deps.NewRelic))
}

// corsConfig allows the frontend origin with credentials; without one every
// origin is allowed and credentials are not.
func corsConfig(frontendURL string) cors.Config {
	cc := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type", handlers.HeaderSafepaySignature, handlers.HeaderSignature, handlers.HeaderRequestID},
		MaxAge:       12 * time.Hour,
	}
	origin := strings.TrimRight(strings.TrimSpace(frontendURL), "/")
	if origin == "" {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = []string{origin}
	cc.AllowCredentials = true
	return cc
}

func pricingPolicy(cfg config.PricingConfig) usecase.PricingPolicy {
	policy := usecase.DefaultPricingPolicy()
	policy.ListingFee = cfg.ListingFee
	policy.FeatureFee = cfg.FeatureFee
	policy.AdFee = cfg.AdFee
	policy.MembershipPrice[entities.MembershipPlanBasic] = cfg.MembershipBasicPrice
	policy.MembershipPrice[entities.MembershipPlanPremium] = cfg.MembershipPremiumPrice
	return policy
}
