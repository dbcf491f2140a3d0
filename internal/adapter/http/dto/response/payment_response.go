package response

import (
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase"
)

type CheckoutResponse struct {
	PaymentID     string `json:"paymentId"`
	OrderID       string `json:"orderId"`
	CheckoutURL   string `json:"checkout_url,omitempty"`
	AmountInPaise int64  `json:"amount_in_paise"`
	Status        string `json:"status"`
}

func FromCheckoutResult(r usecase.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		PaymentID:     r.PaymentID,
		OrderID:       r.OrderID,
		CheckoutURL:   r.CheckoutURL,
		AmountInPaise: r.AmountInPaise,
		Status:        string(r.Status),
	}
}

// ListingPaymentResponse has two shapes: a free first listing carries only
// freeListing and carId; everything else carries the checkout fields.
type ListingPaymentResponse struct {
	FreeListing    bool                   `json:"freeListing,omitempty"`
	CarID          string                 `json:"carId,omitempty"`
	PaymentID      string                 `json:"paymentId,omitempty"`
	OrderID        string                 `json:"orderId,omitempty"`
	CheckoutURL    string                 `json:"checkout_url,omitempty"`
	AmountInPaise  int64                  `json:"amount_in_paise,omitempty"`
	ListingDraftID string                 `json:"listingDraftId,omitempty"`
	Existing       bool                   `json:"existing,omitempty"`
	Pricing        *entities.PricingQuote `json:"pricing,omitempty"`
}

func FromListingPaymentResult(r usecase.ListingPaymentResult) ListingPaymentResponse {
	if r.FreeListing {
		return ListingPaymentResponse{FreeListing: true, CarID: r.CarID}
	}
	pricing := r.Pricing
	return ListingPaymentResponse{
		PaymentID:      r.PaymentID,
		OrderID:        r.OrderID,
		CheckoutURL:    r.CheckoutURL,
		AmountInPaise:  r.AmountInPaise,
		ListingDraftID: r.ListingDraftID,
		Existing:       r.Existing,
		Pricing:        &pricing,
	}
}

type ListingDraftSummary struct {
	ID                 string `json:"id"`
	Status             string `json:"status"`
	PublishedListingID string `json:"publishedListingId,omitempty"`
}

// PaymentStatusResponse is the verify snapshot. Gateway internals (raw
// webhook payloads, idempotency key) stay out of it.
type PaymentStatusResponse struct {
	PaymentID            string               `json:"paymentId"`
	OrderID              string               `json:"orderId"`
	Type                 string               `json:"type"`
	Status               string               `json:"status"`
	AmountInPaise        int64                `json:"amount_in_paise"`
	SettledAmountInPaise *int64               `json:"settled_amount_in_paise,omitempty"`
	Currency             string               `json:"currency"`
	CheckoutURL          string               `json:"checkout_url,omitempty"`
	FailureReason        string               `json:"failureReason,omitempty"`
	PaidAt               *time.Time           `json:"paidAt,omitempty"`
	ListingDraft         *ListingDraftSummary `json:"listingDraft,omitempty"`
	CarID                string               `json:"carId,omitempty"`
}

func FromPaymentStatus(s usecase.PaymentStatusSnapshot) PaymentStatusResponse {
	p := s.Payment
	out := PaymentStatusResponse{
		PaymentID:            p.ID,
		OrderID:              p.OrderID,
		Type:                 string(p.Type),
		Status:               string(p.Status),
		AmountInPaise:        p.RequestedAmountInPaise,
		SettledAmountInPaise: p.SettledAmountInPaise,
		Currency:             p.Currency,
		CheckoutURL:          p.CheckoutURL,
		FailureReason:        p.FailureReason,
		PaidAt:               p.PaidAt,
		CarID:                s.CarID,
	}
	if s.Draft != nil {
		out.ListingDraft = &ListingDraftSummary{
			ID:                 s.Draft.ID,
			Status:             string(s.Draft.Status),
			PublishedListingID: s.Draft.PublishedListingID,
		}
	}
	return out
}

type ListingDraftResponse struct {
	ID                     string                  `json:"id"`
	OwnerID                string                  `json:"ownerId"`
	Status                 string                  `json:"status"`
	Listing                entities.ListingDetails `json:"listing"`
	RequestedAmountInPaise int64                   `json:"requestedAmountInPaise"`
	FeatureAddon           bool                    `json:"featureAddon"`
	PaymentRef             string                  `json:"paymentRef"`
	PublishedListingID     string                  `json:"publishedListingId,omitempty"`
	CreatedAt              time.Time               `json:"createdAt"`
	UpdatedAt              time.Time               `json:"updatedAt"`
}

func FromListingDraft(d entities.ListingDraft) ListingDraftResponse {
	return ListingDraftResponse{
		ID:                     d.ID,
		OwnerID:                d.OwnerID,
		Status:                 string(d.Status),
		Listing:                d.Listing,
		RequestedAmountInPaise: d.RequestedAmountInPaise,
		FeatureAddon:           d.FeatureAddon,
		PaymentRef:             d.PaymentRef,
		PublishedListingID:     d.PublishedListingID,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
}

func FromListingDrafts(drafts []entities.ListingDraft) []ListingDraftResponse {
	out := make([]ListingDraftResponse, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, FromListingDraft(d))
	}
	return out
}

type WebhookAckResponse struct {
	Received bool   `json:"received"`
	Status   string `json:"status,omitempty"`
}
