package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"
)

//go:generate mockgen -source=webhook_usecase.go -destination=../adapter/http/handlers/mocks/webhook_usecase.go -package=mocks

var (
	ErrInvalidSignature      = errors.New("invalid webhook signature")
	ErrInvalidWebhookPayload = errors.New("invalid webhook payload")
)

type WebhookStatus string

const (
	WebhookStatusProcessed WebhookStatus = "processed"
	WebhookStatusIgnored   WebhookStatus = "ignored"
	WebhookStatusNotFound  WebhookStatus = "not_found"
)

// WebhookResult is what the gateway gets acknowledged with. EffectErr carries
// a failed downstream effect; it never turns into a non-2xx response because
// the gateway would only redeliver into the same failure.
type WebhookResult struct {
	Status    WebhookStatus
	PaymentID string
	OrderID   string
	Outcome   entities.WebhookOutcome
	EffectErr error
}

// IWebhookUseCase ingests gateway callbacks.
//
// Only authentication and payload decoding failures are returned as errors.

type IWebhookUseCase interface {
	HandleWebhook(ctx context.Context, rawBody []byte, signature entities.WebhookSignature) (WebhookResult, error)
}

type WebhookUseCase struct {
	payments    interfaces.IPaymentRepository
	drafts      interfaces.IListingDraftRepository
	gateway     interfaces.IPaymentGateway
	coordinator IPublishCoordinator
	now         func() time.Time
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(payments interfaces.IPaymentRepository, drafts interfaces.IListingDraftRepository, gateway interfaces.IPaymentGateway, coordinator IPublishCoordinator) *WebhookUseCase {
	return &WebhookUseCase{
		payments:    payments,
		drafts:      drafts,
		gateway:     gateway,
		coordinator: coordinator,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (u *WebhookUseCase) HandleWebhook(ctx context.Context, rawBody []byte, signature entities.WebhookSignature) (WebhookResult, error) {
	signature.Value = strings.TrimSpace(signature.Value)
	signature.RequestID = strings.TrimSpace(signature.RequestID)
	if err := u.gateway.VerifySignature(rawBody, signature); err != nil {
		log.Printf("[payment][webhook] signature rejected provider=%s body_len=%d err=%v", u.gateway.Name(), len(rawBody), err)
		return WebhookResult{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	event, err := u.gateway.ParseWebhook(ctx, rawBody)
	if err != nil {
		log.Printf("[payment][webhook] parse failed provider=%s err=%v", u.gateway.Name(), err)
		return WebhookResult{}, fmt.Errorf("%w: %v", ErrInvalidWebhookPayload, err)
	}
	if event.OrderID == "" {
		log.Printf("[payment][webhook] payload without order id provider=%s", u.gateway.Name())
		return WebhookResult{}, fmt.Errorf("%w: missing order id", ErrInvalidWebhookPayload)
	}
	log.Printf("[payment][webhook] received order_id=%s txn_id=%s raw_status=%q outcome=%s", event.OrderID, event.TransactionID, event.RawStatus, event.Outcome)

	payment, err := u.findPayment(ctx, event.OrderID)
	if err != nil {
		return WebhookResult{}, err
	}
	result := WebhookResult{OrderID: event.OrderID, Outcome: event.Outcome}
	if payment.ID == "" {
		log.Printf("[payment][webhook] payment not found order_id=%s", event.OrderID)
		result.Status = WebhookStatusNotFound
		return result, nil
	}
	result.PaymentID = payment.ID

	if err := u.payments.RecordWebhook(ctx, payment.ID, event.Raw); err != nil {
		log.Printf("[payment][webhook] record payload failed payment_id=%s err=%v", payment.ID, err)
	}

	switch event.Outcome {
	case entities.WebhookOutcomeSucceeded:
		result.Status = WebhookStatusProcessed
		result.EffectErr = u.coordinator.OnPaymentSucceeded(ctx, payment, event)
	case entities.WebhookOutcomeFailed:
		result.Status = WebhookStatusProcessed
		result.EffectErr = u.onPaymentFailed(ctx, payment, event)
	default:
		log.Printf("[payment][webhook] unrecognized status ignored payment_id=%s raw_status=%q", payment.ID, event.RawStatus)
		result.Status = WebhookStatusIgnored
		return result, nil
	}

	if result.EffectErr != nil {
		log.Printf("[payment][webhook] effect failed payment_id=%s outcome=%s err=%v", payment.ID, event.Outcome, result.EffectErr)
	}
	return result, nil
}

// findPayment resolves by order id and falls back to the payment id, since
// some gateways echo whichever reference they were given.
func (u *WebhookUseCase) findPayment(ctx context.Context, ref string) (entities.Payment, error) {
	p, err := u.payments.GetByOrderID(ctx, ref)
	if err != nil {
		log.Printf("[payment][webhook] lookup by order id failed order_id=%s err=%v", ref, err)
		return entities.Payment{}, err
	}
	if p.ID != "" {
		return p, nil
	}
	p, err = u.payments.GetByID(ctx, ref)
	if err != nil {
		log.Printf("[payment][webhook] lookup by id failed id=%s err=%v", ref, err)
		return entities.Payment{}, err
	}
	return p, nil
}

func (u *WebhookUseCase) onPaymentFailed(ctx context.Context, p entities.Payment, event entities.WebhookEvent) error {
	if p.Status == entities.PaymentStatusSucceeded {
		log.Printf("[payment][webhook] failure after success ignored payment_id=%s", p.ID)
		return nil
	}

	reason := "gateway reported " + event.RawStatus
	applied, err := u.payments.MarkFailed(ctx, p.ID, reason, u.now())
	if err != nil {
		return fmt.Errorf("mark payment failed: %w", err)
	}
	if !applied {
		log.Printf("[payment][webhook] payment already resolved payment_id=%s", p.ID)
	}

	if p.Type == entities.PaymentTypeListing && p.ListingDraftID != "" {
		from := []entities.ListingDraftStatus{entities.ListingDraftStatusPaymentPending}
		if _, err := u.drafts.TransitionStatus(ctx, p.ListingDraftID, from, entities.ListingDraftStatusPaymentFailed); err != nil {
			return fmt.Errorf("mark draft failed: %w", err)
		}
	}
	log.Printf("[payment][webhook] payment failed payment_id=%s raw_status=%q", p.ID, event.RawStatus)
	return nil
}
