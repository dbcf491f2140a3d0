package routes

import (
	"car_marketplace/internal/adapter/http/handlers"
	"car_marketplace/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
	PathAdmin    = "/admin"
)

// addPaymentRoutes registers the payment API. The webhook is public and
// authenticated by signature; limiter may be nil.
func addPaymentRoutes(rg *gin.RouterGroup, auth, limiter gin.HandlerFunc, paymentHandler *handlers.PaymentHandler, webhookHandler *handlers.WebhookHandler) {
	payments := rg.Group(PathPayments)
	payments.POST("/webhook", webhookHandler.HandleWebhook)

	create := []gin.HandlerFunc{auth}
	if limiter != nil {
		create = append(create, limiter)
	}

	authed := payments.Group("", auth)
	{
		authed.GET("/listing-price", paymentHandler.GetListingPrice)
		authed.GET("/verify", paymentHandler.VerifyPayment)
		authed.GET("/pending-listings", paymentHandler.ListPendingListings)
		authed.POST("/pending-listings/:id/cancel", paymentHandler.CancelPendingListing)
	}

	creating := payments.Group("", create...)
	{
		creating.POST("/create-listing-payment", paymentHandler.CreateListingPayment)
		creating.POST("/create-membership-payment", paymentHandler.CreateMembershipPayment)
		creating.POST("/create-ad-payment", paymentHandler.CreateAdPayment)
	}
}

func addAdminRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc, adminHandler *handlers.AdminHandler) {
	admin := rg.Group(PathAdmin, auth, middleware.RequireAdmin())
	admin.GET("/payments/reconciliation", adminHandler.ListReconciliation)
}
