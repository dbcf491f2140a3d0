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

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

//go:generate mockgen -source=listing_payment_usecase.go -destination=../adapter/http/handlers/mocks/listing_payment_usecase.go -package=mocks

var (
	ErrUnauthenticated       = errors.New("authentication required")
	ErrInvalidListingDraft   = errors.New("invalid listing details")
	ErrInvalidMembershipPlan = errors.New("invalid membership plan")
	ErrInvalidCarID          = errors.New("invalid car id")
	ErrCarNotFound           = errors.New("car not found")
	ErrCarForbidden          = errors.New("car belongs to another owner")
	ErrSubmissionInProgress  = errors.New("an identical submission is already in progress")
	ErrGatewayUnavailable    = errors.New("payment gateway unavailable")
)

const (
	submissionLockTTL     = 30 * time.Second
	defaultGatewayTimeout = 15 * time.Second

	submissionPollInterval = 250 * time.Millisecond
	submissionPollAttempts = 8

	orderPrefixListing    = "LST"
	orderPrefixMembership = "MEM"
	orderPrefixAd         = "ADV"
)

// IPaymentCheckoutUseCase opens gateway checkouts for the three payment kinds.
//
// Listing flow:
//   - price the listing; a free first listing is published immediately
//   - derive the idempotency key and return the existing payment when found
//   - otherwise create draft + PENDING payment and ask the gateway for a checkout URL
//   - a gateway failure marks the payment FAILED and the draft payment_failed

type IPaymentCheckoutUseCase interface {
	CreateListingPayment(ctx context.Context, userID string, listing entities.ListingDetails, featureAddon bool) (ListingPaymentResult, error)
	CreateMembershipPayment(ctx context.Context, userID string, plan entities.MembershipPlan) (CheckoutResult, error)
	CreateAdPayment(ctx context.Context, userID, carID string) (CheckoutResult, error)
}

// CheckoutResult identifies the payment a client should complete.
type CheckoutResult struct {
	PaymentID     string
	OrderID       string
	CheckoutURL   string
	AmountInPaise int64
	Status        entities.PaymentStatus
}

// ListingPaymentResult is either a free publication (FreeListing, CarID) or a
// checkout. Existing is set when an earlier identical submission was returned.
type ListingPaymentResult struct {
	CheckoutResult
	FreeListing    bool
	CarID          string
	Existing       bool
	ListingDraftID string
	Pricing        entities.PricingQuote
}

// PaymentCheckoutDeps wires PaymentCheckoutUseCase. Lock is optional.
type PaymentCheckoutDeps struct {
	Payments       interfaces.IPaymentRepository
	Drafts         interfaces.IListingDraftRepository
	Cars           interfaces.ICarRepository
	Users          interfaces.IUserRepository
	Gateway        interfaces.IPaymentGateway
	Lock           interfaces.ISubmissionLock
	Pricing        IPricingUseCase
	Policy         PricingPolicy
	Currency       string
	GatewayTimeout time.Duration
}

type PaymentCheckoutUseCase struct {
	payments       interfaces.IPaymentRepository
	drafts         interfaces.IListingDraftRepository
	cars           interfaces.ICarRepository
	users          interfaces.IUserRepository
	gateway        interfaces.IPaymentGateway
	lock           interfaces.ISubmissionLock
	pricing        IPricingUseCase
	policy         PricingPolicy
	currency       string
	gatewayTimeout time.Duration
	validate       *validator.Validate
	now            func() time.Time
	newID          func() string
	submissionWait func() backoff.BackOff
}

var _ IPaymentCheckoutUseCase = (*PaymentCheckoutUseCase)(nil)

func NewPaymentCheckoutUseCase(d PaymentCheckoutDeps) *PaymentCheckoutUseCase {
	timeout := d.GatewayTimeout
	if timeout <= 0 {
		timeout = defaultGatewayTimeout
	}
	currency := strings.TrimSpace(d.Currency)
	if currency == "" {
		currency = "PKR"
	}
	return &PaymentCheckoutUseCase{
		payments:       d.Payments,
		drafts:         d.Drafts,
		cars:           d.Cars,
		users:          d.Users,
		gateway:        d.Gateway,
		lock:           d.Lock,
		pricing:        d.Pricing,
		policy:         d.Policy,
		currency:       currency,
		gatewayTimeout: timeout,
		validate:       validator.New(),
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.NewString,
		submissionWait: func() backoff.BackOff {
			return backoff.WithMaxRetries(backoff.NewConstantBackOff(submissionPollInterval), submissionPollAttempts)
		},
	}
}

func (u *PaymentCheckoutUseCase) CreateListingPayment(ctx context.Context, userID string, listing entities.ListingDetails, featureAddon bool) (ListingPaymentResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ListingPaymentResult{}, ErrUnauthenticated
	}
	if err := u.validate.Struct(listing); err != nil {
		log.Printf("[payment][usecase] invalid listing user_id=%s err=%v", userID, err)
		return ListingPaymentResult{}, fmt.Errorf("%w: %v", ErrInvalidListingDraft, err)
	}

	quote, err := u.pricing.Calculate(ctx, userID, featureAddon)
	if err != nil {
		return ListingPaymentResult{}, err
	}
	log.Printf("[payment][usecase] listing priced user_id=%s first=%t feature=%t amount_paise=%d", userID, quote.IsFirstListing, featureAddon, quote.TotalInPaise)

	if quote.IsFree() {
		return u.publishFreeListing(ctx, userID, listing, quote)
	}

	key := DeriveIdempotencyKey(userID, listing, featureAddon)

	if u.lock != nil {
		lockKey := submissionLockKey(key)
		acquired, err := u.lock.Acquire(ctx, lockKey, submissionLockTTL)
		switch {
		case err != nil:
			// Redis is an accelerator; the unique key in the store still holds.
			log.Printf("[payment][usecase] submission lock unavailable key=%s err=%v", key, err)
		case !acquired:
			log.Printf("[payment][usecase] submission already in progress key=%s; waiting for its payment", key)
			existing, err := u.awaitConcurrentSubmission(ctx, key)
			if err != nil {
				return ListingPaymentResult{}, err
			}
			log.Printf("[payment][usecase] returning concurrent payment payment_id=%s status=%s", existing.ID, existing.Status)
			return existingListingResult(existing, quote), nil
		default:
			defer func() {
				if err := u.lock.Release(context.WithoutCancel(ctx), lockKey); err != nil {
					log.Printf("[payment][usecase] release submission lock failed key=%s err=%v", key, err)
				}
			}()
		}
	}

	existing, err := u.payments.GetByIdempotencyKey(ctx, key)
	if err != nil {
		log.Printf("[payment][usecase] idempotency lookup failed key=%s err=%v", key, err)
		return ListingPaymentResult{}, err
	}
	if existing.ID != "" {
		log.Printf("[payment][usecase] returning existing payment payment_id=%s status=%s", existing.ID, existing.Status)
		return existingListingResult(existing, quote), nil
	}

	now := u.now()
	draft, err := u.drafts.Create(ctx, entities.ListingDraft{
		ID:                     u.newID(),
		OwnerID:                userID,
		Listing:                listing,
		RequestedAmountInPaise: quote.TotalInPaise,
		FeatureAddon:           featureAddon,
		IsFirstListing:         quote.IsFirstListing,
		PaymentRef:             u.newOrderID(orderPrefixListing),
		Status:                 entities.ListingDraftStatusPaymentPending,
		CreatedAt:              now,
		UpdatedAt:              now,
	})
	if err != nil {
		log.Printf("[payment][usecase] create draft failed user_id=%s err=%v", userID, err)
		return ListingPaymentResult{}, err
	}

	payment, err := u.payments.Create(ctx, entities.Payment{
		ID:                     u.newID(),
		PayerID:                userID,
		Type:                   entities.PaymentTypeListing,
		RequestedAmountInPaise: quote.TotalInPaise,
		Currency:               u.currency,
		Status:                 entities.PaymentStatusPending,
		Provider:               u.gateway.Name(),
		OrderID:                draft.PaymentRef,
		IdempotencyKey:         key,
		ListingDraftID:         draft.ID,
		CreatedAt:              now,
		UpdatedAt:              now,
	})
	if errors.Is(err, interfaces.ErrDuplicateIdempotencyKey) {
		return u.resolveLostRace(ctx, draft, key, quote)
	}
	if err != nil {
		log.Printf("[payment][usecase] create payment failed draft_id=%s err=%v", draft.ID, err)
		u.markDraft(ctx, draft.ID, entities.ListingDraftStatusPaymentFailed)
		return ListingPaymentResult{}, err
	}
	log.Printf("[payment][usecase] listing payment created payment_id=%s draft_id=%s order_id=%s", payment.ID, draft.ID, payment.OrderID)

	checkout, err := u.openCheckout(ctx, payment, entities.CheckoutRequest{
		ItemName:       fmt.Sprintf("Car listing: %s %s %d", listing.Brand, listing.Model, listing.Year),
		ListingDraftID: draft.ID,
		Feature:        featureAddon,
	})
	if err != nil {
		u.markDraft(ctx, draft.ID, entities.ListingDraftStatusPaymentFailed)
		return ListingPaymentResult{}, err
	}

	return ListingPaymentResult{
		CheckoutResult: checkout,
		ListingDraftID: draft.ID,
		Pricing:        quote,
	}, nil
}

// awaitConcurrentSubmission polls the store until the lock holder has written
// its payment. It gives up with ErrSubmissionInProgress.
func (u *PaymentCheckoutUseCase) awaitConcurrentSubmission(ctx context.Context, key string) (entities.Payment, error) {
	var found entities.Payment
	op := func() error {
		p, err := u.payments.GetByIdempotencyKey(ctx, key)
		if err != nil {
			log.Printf("[payment][usecase] idempotency lookup failed key=%s err=%v", key, err)
			return backoff.Permanent(err)
		}
		if p.ID == "" {
			return ErrSubmissionInProgress
		}
		found = p
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(u.submissionWait(), ctx)); err != nil {
		return entities.Payment{}, err
	}
	return found, nil
}

func (u *PaymentCheckoutUseCase) publishFreeListing(ctx context.Context, userID string, listing entities.ListingDetails, quote entities.PricingQuote) (ListingPaymentResult, error) {
	car, err := u.cars.Create(ctx, entities.NewFreeListingCar(u.newID(), userID, listing, u.now()))
	if err != nil {
		log.Printf("[payment][usecase] free listing publish failed user_id=%s err=%v", userID, err)
		return ListingPaymentResult{}, err
	}
	log.Printf("[payment][usecase] free first listing published user_id=%s car_id=%s", userID, car.ID)
	return ListingPaymentResult{FreeListing: true, CarID: car.ID, Pricing: quote}, nil
}

// resolveLostRace handles a concurrent submission that inserted the same key
// first: our draft is orphaned, so it is cancelled and the winner returned.
func (u *PaymentCheckoutUseCase) resolveLostRace(ctx context.Context, draft entities.ListingDraft, key string, quote entities.PricingQuote) (ListingPaymentResult, error) {
	log.Printf("[payment][usecase] lost idempotency race draft_id=%s key=%s", draft.ID, key)
	u.markDraft(ctx, draft.ID, entities.ListingDraftStatusCancelled)

	winner, err := u.payments.GetByIdempotencyKey(ctx, key)
	if err != nil {
		return ListingPaymentResult{}, err
	}
	if winner.ID == "" {
		return ListingPaymentResult{}, fmt.Errorf("payment for idempotency key %s vanished after duplicate insert", key)
	}
	return existingListingResult(winner, quote), nil
}

func (u *PaymentCheckoutUseCase) markDraft(ctx context.Context, draftID string, to entities.ListingDraftStatus) {
	from := []entities.ListingDraftStatus{entities.ListingDraftStatusPaymentPending}
	if _, err := u.drafts.TransitionStatus(context.WithoutCancel(ctx), draftID, from, to); err != nil {
		log.Printf("[payment][usecase] draft transition failed draft_id=%s to=%s err=%v", draftID, to, err)
	}
}

// openCheckout fills the common request fields, calls the gateway under its
// own deadline and stores the checkout URL. Cleanup writes ignore the caller's
// cancellation so a client disconnect cannot leave a PENDING orphan.
func (u *PaymentCheckoutUseCase) openCheckout(ctx context.Context, p entities.Payment, req entities.CheckoutRequest) (CheckoutResult, error) {
	req.PaymentID = p.ID
	req.OrderID = p.OrderID
	req.AmountInPaise = p.RequestedAmountInPaise
	req.Currency = p.Currency

	if u.users != nil {
		user, err := u.users.GetByID(ctx, p.PayerID)
		if err != nil {
			log.Printf("[payment][usecase] payer lookup failed user_id=%s err=%v", p.PayerID, err)
		} else {
			req.CustomerName = user.Name
			req.CustomerEmail = user.Email
		}
	}

	gctx, cancel := context.WithTimeout(ctx, u.gatewayTimeout)
	defer cancel()

	session, err := u.gateway.CreateCheckout(gctx, req)
	if err != nil {
		log.Printf("[payment][usecase] gateway checkout failed payment_id=%s provider=%s err=%v", p.ID, u.gateway.Name(), err)
		if _, merr := u.payments.MarkFailed(context.WithoutCancel(ctx), p.ID, "checkout creation failed: "+err.Error(), u.now()); merr != nil {
			log.Printf("[payment][usecase] mark failed after gateway error failed payment_id=%s err=%v", p.ID, merr)
		}
		return CheckoutResult{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	if err := u.payments.SetCheckoutURL(context.WithoutCancel(ctx), p.ID, session.CheckoutURL, session.ProviderRef); err != nil {
		// The webhook resolves the payment by order id, so the session is still usable.
		log.Printf("[payment][usecase] store checkout url failed payment_id=%s err=%v", p.ID, err)
	}
	log.Printf("[payment][usecase] checkout opened payment_id=%s order_id=%s provider_ref=%s", p.ID, p.OrderID, session.ProviderRef)

	return CheckoutResult{
		PaymentID:     p.ID,
		OrderID:       p.OrderID,
		CheckoutURL:   session.CheckoutURL,
		AmountInPaise: p.RequestedAmountInPaise,
		Status:        entities.PaymentStatusPending,
	}, nil
}

func (u *PaymentCheckoutUseCase) newOrderID(prefix string) string {
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(u.newID(), "-", ""))
}

func existingListingResult(p entities.Payment, quote entities.PricingQuote) ListingPaymentResult {
	return ListingPaymentResult{
		CheckoutResult: CheckoutResult{
			PaymentID:     p.ID,
			OrderID:       p.OrderID,
			CheckoutURL:   p.CheckoutURL,
			AmountInPaise: p.RequestedAmountInPaise,
			Status:        p.Status,
		},
		Existing:       true,
		ListingDraftID: p.ListingDraftID,
		Pricing:        quote,
	}
}
