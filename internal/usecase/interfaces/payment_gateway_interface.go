package interfaces

import (
	"context"

	"car_marketplace/internal/domain/entities"
)

//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_interface.go -package=mock_interfaces

// IPaymentGateway abstracts the external payment provider (Safepay, Mercado Pago).
//
// VerifySignature authenticates an inbound webhook from the raw body and its
// signature headers; it is the only thing standing between the internet and a
// payment state change.
// ParseWebhook maps the provider payload onto canonical fields.
type IPaymentGateway interface {
	Name() string
	CreateCheckout(ctx context.Context, req entities.CheckoutRequest) (entities.CheckoutSession, error)
	VerifySignature(rawBody []byte, signature entities.WebhookSignature) error
	ParseWebhook(ctx context.Context, rawBody []byte) (entities.WebhookEvent, error)
}
