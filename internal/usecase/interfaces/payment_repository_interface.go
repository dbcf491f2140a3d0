package interfaces

import (
	"context"
	"time"

	"car_marketplace/internal/domain/entities"
)

//go:generate mockgen -source=payment_repository_interface.go -destination=mocks/payment_repository_interface.go -package=mock_interfaces

// IPaymentRepository abstracts persistence for Payment.
//
// Lookups return a zero Payment (empty ID) when nothing matches.
// MarkSucceeded and MarkFailed are conditional writes and report whether the
// transition was applied by this call.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.Payment, error)
	GetByIdempotencyKey(ctx context.Context, key string) (entities.Payment, error)
	SetCheckoutURL(ctx context.Context, id, checkoutURL, providerRef string) error
	MarkSucceeded(ctx context.Context, id string, s entities.Settlement) (bool, error)
	MarkFailed(ctx context.Context, id, reason string, at time.Time) (bool, error)
	RecordWebhook(ctx context.Context, id string, payload map[string]any) error
}
