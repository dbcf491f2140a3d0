package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"
)

//go:generate mockgen -source=payment_query_usecase.go -destination=../adapter/http/handlers/mocks/payment_query_usecase.go -package=mocks

var (
	ErrInvalidPaymentID   = errors.New("invalid payment id")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaymentForbidden   = errors.New("payment belongs to another user")
	ErrInvalidDraftID     = errors.New("invalid listing draft id")
	ErrDraftForbidden     = errors.New("listing draft belongs to another user")
	ErrDraftNotCancelable = errors.New("listing draft can no longer be cancelled")
)

// PaymentStatusSnapshot is what an owner sees when polling a payment.
type PaymentStatusSnapshot struct {
	Payment entities.Payment
	Draft   *entities.ListingDraft
	CarID   string
}

// IPaymentQueryUseCase serves the owner-facing reads and draft cancellation.

type IPaymentQueryUseCase interface {
	VerifyPayment(ctx context.Context, userID, paymentID string) (PaymentStatusSnapshot, error)
	ListPendingListings(ctx context.Context, userID string) ([]entities.ListingDraft, error)
	CancelPendingListing(ctx context.Context, userID, draftID string) (entities.ListingDraft, error)
	ListReconciliationDrafts(ctx context.Context) ([]entities.ListingDraft, error)
}

type PaymentQueryUseCase struct {
	payments interfaces.IPaymentRepository
	drafts   interfaces.IListingDraftRepository
}

var _ IPaymentQueryUseCase = (*PaymentQueryUseCase)(nil)

func NewPaymentQueryUseCase(payments interfaces.IPaymentRepository, drafts interfaces.IListingDraftRepository) *PaymentQueryUseCase {
	return &PaymentQueryUseCase{payments: payments, drafts: drafts}
}

// VerifyPayment accepts a payment id or an order id. A payment owned by
// someone else is reported as forbidden without any of its fields.
func (u *PaymentQueryUseCase) VerifyPayment(ctx context.Context, userID, paymentID string) (PaymentStatusSnapshot, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return PaymentStatusSnapshot{}, ErrUnauthenticated
	}
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return PaymentStatusSnapshot{}, ErrInvalidPaymentID
	}

	p, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		return PaymentStatusSnapshot{}, err
	}
	if p.ID == "" {
		if p, err = u.payments.GetByOrderID(ctx, paymentID); err != nil {
			return PaymentStatusSnapshot{}, err
		}
	}
	if p.ID == "" {
		return PaymentStatusSnapshot{}, ErrPaymentNotFound
	}
	if p.PayerID != userID {
		log.Printf("[payment][usecase] verify denied payment_id=%s user_id=%s", p.ID, userID)
		return PaymentStatusSnapshot{}, ErrPaymentForbidden
	}

	snap := PaymentStatusSnapshot{Payment: p, CarID: p.CarID}
	if p.Type == entities.PaymentTypeListing && p.ListingDraftID != "" {
		d, err := u.drafts.GetByID(ctx, p.ListingDraftID)
		if err != nil {
			return PaymentStatusSnapshot{}, err
		}
		if d.ID != "" {
			snap.Draft = &d
			snap.CarID = d.PublishedListingID
		}
	}
	return snap, nil
}

// ListPendingListings returns the owner's drafts that still need attention,
// newest first.
func (u *PaymentQueryUseCase) ListPendingListings(ctx context.Context, userID string) ([]entities.ListingDraft, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	all, err := u.drafts.ListByOwner(ctx, userID)
	if err != nil {
		log.Printf("[payment][usecase] list drafts failed user_id=%s err=%v", userID, err)
		return nil, err
	}
	out := make([]entities.ListingDraft, 0, len(all))
	for _, d := range all {
		if d.IsUnresolved() {
			out = append(out, d)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (u *PaymentQueryUseCase) CancelPendingListing(ctx context.Context, userID, draftID string) (entities.ListingDraft, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.ListingDraft{}, ErrUnauthenticated
	}
	draftID = strings.TrimSpace(draftID)
	if draftID == "" {
		return entities.ListingDraft{}, ErrInvalidDraftID
	}

	d, err := u.drafts.GetByID(ctx, draftID)
	if err != nil {
		return entities.ListingDraft{}, err
	}
	if d.ID == "" {
		return entities.ListingDraft{}, ErrDraftNotFound
	}
	if d.OwnerID != userID {
		return entities.ListingDraft{}, ErrDraftForbidden
	}
	if !d.CanCancel() {
		return entities.ListingDraft{}, ErrDraftNotCancelable
	}

	from := []entities.ListingDraftStatus{entities.ListingDraftStatusPaymentPending, entities.ListingDraftStatusPaymentFailed}
	ok, err := u.drafts.TransitionStatus(ctx, d.ID, from, entities.ListingDraftStatusCancelled)
	if err != nil {
		return entities.ListingDraft{}, err
	}
	if !ok {
		// A webhook moved it in between.
		return entities.ListingDraft{}, ErrDraftNotCancelable
	}
	log.Printf("[payment][usecase] draft cancelled draft_id=%s user_id=%s", d.ID, userID)
	d.Status = entities.ListingDraftStatusCancelled
	return d, nil
}

// ListReconciliationDrafts lists drafts whose payment settled but whose car
// was never created, usually an amount mismatch or a failed publish.
func (u *PaymentQueryUseCase) ListReconciliationDrafts(ctx context.Context) ([]entities.ListingDraft, error) {
	out, err := u.drafts.ListByStatus(ctx, entities.ListingDraftStatusPaymentSuccess)
	if err != nil {
		log.Printf("[payment][usecase] list reconciliation drafts failed err=%v", err)
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(ds []entities.ListingDraft) {
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].CreatedAt.After(ds[j].CreatedAt) })
}
