package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrDraftNotFound         = errors.New("listing draft not found")
	ErrAmountMismatch        = errors.New("settled amount outside tolerance")
	ErrPaymentAlreadyFailed  = errors.New("success reported for a failed payment")
	ErrUnknownPaymentType    = errors.New("unknown payment type")
	ErrUnknownMembershipPlan = errors.New("unknown membership plan")
	ErrCoordinatorPanic      = errors.New("publish coordinator panicked")
)

// DefaultAmountToleranceInPaise absorbs gateway rounding (0.10 of a unit).
const DefaultAmountToleranceInPaise int64 = 10

// IPublishCoordinator applies the effect of a settled payment.
//
// Every step is guarded so a redelivered success event is a no-op:
//   - the payment flips to SUCCEEDED with a conditional write
//   - a listing draft already published is left untouched
//   - the car is created and the draft published in one atomic store call
//
// Failures come back as values; callers must still acknowledge the webhook.

type IPublishCoordinator interface {
	OnPaymentSucceeded(ctx context.Context, p entities.Payment, event entities.WebhookEvent) error
}

type PublishCoordinator struct {
	payments  interfaces.IPaymentRepository
	drafts    interfaces.IListingDraftRepository
	cars      interfaces.ICarRepository
	users     interfaces.IUserRepository
	tolerance int64
	now       func() time.Time
	newID     func() string
}

var _ IPublishCoordinator = (*PublishCoordinator)(nil)

func NewPublishCoordinator(payments interfaces.IPaymentRepository, drafts interfaces.IListingDraftRepository, cars interfaces.ICarRepository, users interfaces.IUserRepository, toleranceInPaise int64) *PublishCoordinator {
	if toleranceInPaise < 0 {
		toleranceInPaise = DefaultAmountToleranceInPaise
	}
	return &PublishCoordinator{
		payments:  payments,
		drafts:    drafts,
		cars:      cars,
		users:     users,
		tolerance: toleranceInPaise,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

func (c *PublishCoordinator) OnPaymentSucceeded(ctx context.Context, p entities.Payment, event entities.WebhookEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[publish][coordinator] panic payment_id=%s recovered=%v", p.ID, r)
			err = fmt.Errorf("%w: %v", ErrCoordinatorPanic, r)
		}
	}()

	if p.Status == entities.PaymentStatusFailed {
		log.Printf("[publish][coordinator] success event for failed payment payment_id=%s order_id=%s; needs manual reconciliation", p.ID, p.OrderID)
		return ErrPaymentAlreadyFailed
	}

	settled := p.RequestedAmountInPaise
	if event.SettledAmountInPaise != nil {
		settled = *event.SettledAmountInPaise
	} else {
		log.Printf("[publish][coordinator] settled amount missing; using requested payment_id=%s amount_paise=%d", p.ID, settled)
	}

	now := c.now()
	applied, err := c.payments.MarkSucceeded(ctx, p.ID, entities.Settlement{
		SettledAmountInPaise: settled,
		GatewayFeesInPaise:   event.GatewayFeesInPaise,
		ProviderRef:          event.TransactionID,
		PaidAt:               now,
	})
	if err != nil {
		log.Printf("[publish][coordinator] mark succeeded failed payment_id=%s err=%v", p.ID, err)
		return fmt.Errorf("mark payment succeeded: %w", err)
	}
	if !applied {
		log.Printf("[publish][coordinator] payment already resolved payment_id=%s; checking downstream effect", p.ID)
		if settled, err = c.recordedSettlement(ctx, p.ID); err != nil {
			return err
		}
	}

	switch p.Type {
	case entities.PaymentTypeListing:
		return c.publishListing(ctx, p, settled)
	case entities.PaymentTypeMembership:
		return c.activateMembership(ctx, p)
	case entities.PaymentTypeAd:
		return c.activateAd(ctx, p)
	default:
		log.Printf("[publish][coordinator] unknown payment type payment_id=%s type=%q", p.ID, p.Type)
		return fmt.Errorf("%w: %q", ErrUnknownPaymentType, p.Type)
	}
}

// recordedSettlement returns the amount stored by the delivery that resolved
// the payment. Later deliveries are judged against it, never their own amount.
func (c *PublishCoordinator) recordedSettlement(ctx context.Context, paymentID string) (int64, error) {
	stored, err := c.payments.GetByID(ctx, paymentID)
	if err != nil {
		log.Printf("[publish][coordinator] reload payment failed payment_id=%s err=%v", paymentID, err)
		return 0, fmt.Errorf("reload payment: %w", err)
	}
	if stored.ID == "" {
		log.Printf("[publish][coordinator] payment vanished payment_id=%s", paymentID)
		return 0, ErrPaymentNotFound
	}
	if stored.Status == entities.PaymentStatusFailed {
		log.Printf("[publish][coordinator] success event for failed payment payment_id=%s order_id=%s; needs manual reconciliation", stored.ID, stored.OrderID)
		return 0, ErrPaymentAlreadyFailed
	}
	if stored.SettledAmountInPaise == nil {
		return stored.RequestedAmountInPaise, nil
	}
	return *stored.SettledAmountInPaise, nil
}

func (c *PublishCoordinator) publishListing(ctx context.Context, p entities.Payment, settled int64) error {
	if p.ListingDraftID == "" {
		log.Printf("[publish][coordinator] listing payment without draft payment_id=%s", p.ID)
		return ErrDraftNotFound
	}

	draft, err := c.drafts.GetByID(ctx, p.ListingDraftID)
	if err != nil {
		log.Printf("[publish][coordinator] load draft failed draft_id=%s err=%v", p.ListingDraftID, err)
		return err
	}
	if draft.ID == "" {
		log.Printf("[publish][coordinator] draft not found draft_id=%s payment_id=%s", p.ListingDraftID, p.ID)
		return ErrDraftNotFound
	}
	if draft.IsPublished() {
		log.Printf("[publish][coordinator] draft already published draft_id=%s car_id=%s", draft.ID, draft.PublishedListingID)
		return nil
	}

	from := []entities.ListingDraftStatus{
		entities.ListingDraftStatusPaymentPending,
		entities.ListingDraftStatusPaymentFailed,
		entities.ListingDraftStatusCancelled,
	}
	if _, err := c.drafts.TransitionStatus(ctx, draft.ID, from, entities.ListingDraftStatusPaymentSuccess); err != nil {
		log.Printf("[publish][coordinator] draft transition failed draft_id=%s err=%v", draft.ID, err)
		return err
	}

	if diff := entities.AbsDiff(settled, draft.RequestedAmountInPaise); diff > c.tolerance {
		log.Printf("[publish][coordinator] amount mismatch draft_id=%s settled_paise=%d requested_paise=%d; left in payment_success", draft.ID, settled, draft.RequestedAmountInPaise)
		return fmt.Errorf("%w: settled=%d requested=%d", ErrAmountMismatch, settled, draft.RequestedAmountInPaise)
	}

	now := c.now()
	car, err := c.drafts.Publish(ctx, draft.ID, entities.NewCarFromDraft(c.newID(), draft, now), now)
	if errors.Is(err, interfaces.ErrDraftAlreadyPublished) {
		log.Printf("[publish][coordinator] concurrent publish won draft_id=%s", draft.ID)
		return nil
	}
	if err != nil {
		log.Printf("[publish][coordinator] publish failed draft_id=%s err=%v", draft.ID, err)
		return err
	}
	log.Printf("[publish][coordinator] listing published draft_id=%s car_id=%s featured=%t", draft.ID, car.ID, car.Featured)
	return nil
}

func (c *PublishCoordinator) activateMembership(ctx context.Context, p entities.Payment) error {
	duration, ok := p.Plan.Duration()
	if !ok {
		log.Printf("[publish][coordinator] unknown plan payment_id=%s plan=%q", p.ID, p.Plan)
		return fmt.Errorf("%w: %q", ErrUnknownMembershipPlan, p.Plan)
	}

	expires := c.now().Add(duration)
	applied, err := c.users.ActivateMembership(ctx, p.PayerID, entities.Membership{
		Plan:      p.Plan,
		Active:    true,
		ExpiresAt: &expires,
		PaymentID: p.ID,
	})
	if errors.Is(err, interfaces.ErrUserNotFound) {
		log.Printf("[publish][coordinator] paid membership for unknown user user_id=%s payment_id=%s; needs manual reconciliation", p.PayerID, p.ID)
		return err
	}
	if err != nil {
		log.Printf("[publish][coordinator] activate membership failed user_id=%s err=%v", p.PayerID, err)
		return err
	}
	if !applied {
		log.Printf("[publish][coordinator] membership already activated by payment_id=%s", p.ID)
		return nil
	}
	log.Printf("[publish][coordinator] membership activated user_id=%s plan=%s expires_at=%s", p.PayerID, p.Plan, expires.Format(time.RFC3339))
	return nil
}

func (c *PublishCoordinator) activateAd(ctx context.Context, p entities.Payment) error {
	if p.CarID == "" {
		log.Printf("[publish][coordinator] ad payment without car payment_id=%s", p.ID)
		return ErrCarNotFound
	}
	car, err := c.cars.MarkAdPaid(ctx, p.CarID)
	if err != nil {
		log.Printf("[publish][coordinator] mark ad paid failed car_id=%s err=%v", p.CarID, err)
		return err
	}
	if car.ID == "" {
		return ErrCarNotFound
	}
	log.Printf("[publish][coordinator] ad activated car_id=%s", car.ID)
	return nil
}
