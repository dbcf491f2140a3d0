package entities

import "time"

// PaymentType selects which effect a settled payment triggers.
type PaymentType string

const (
	PaymentTypeMembership PaymentType = "membership"
	PaymentTypeAd         PaymentType = "ad"
	PaymentTypeListing    PaymentType = "listing"
)

// PaymentStatus transitions PENDING -> SUCCEEDED or PENDING -> FAILED exactly once.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Payment is one checkout attempt against the gateway.
//
// Storage model:
//   - PK: id
//   - unique: idempotency_key (when set), order_id
//   - index: listing_draft_id
//
// SettledAmountInPaise is only set once Status is SUCCEEDED.
type Payment struct {
	ID                     string         `json:"id"`
	PayerID                string         `json:"payerId"`
	Type                   PaymentType    `json:"type"`
	RequestedAmountInPaise int64          `json:"requestedAmountInPaise"`
	SettledAmountInPaise   *int64         `json:"settledAmountInPaise,omitempty"`
	GatewayFeesInPaise     *int64         `json:"gatewayFeesInPaise,omitempty"`
	Currency               string         `json:"currency"`
	Status                 PaymentStatus  `json:"status"`
	Provider               string         `json:"provider"`
	ProviderRef            string         `json:"providerRef,omitempty"`
	OrderID                string         `json:"orderId"`
	IdempotencyKey         string         `json:"idempotencyKey,omitempty"`
	ListingDraftID         string         `json:"listingDraftId,omitempty"`
	CarID                  string         `json:"carId,omitempty"`
	Plan                   MembershipPlan `json:"plan,omitempty"`
	CheckoutURL            string         `json:"checkoutUrl,omitempty"`
	WebhookReceived        bool           `json:"webhookReceived"`
	FailureReason          string         `json:"failureReason,omitempty"`
	Metadata               map[string]any `json:"metadata,omitempty"`
	PaidAt                 *time.Time     `json:"paidAt,omitempty"`
	FailedAt               *time.Time     `json:"failedAt,omitempty"`
	CreatedAt              time.Time      `json:"createdAt"`
	UpdatedAt              time.Time      `json:"updatedAt"`
}

func (p Payment) IsResolved() bool {
	return p.Status == PaymentStatusSucceeded || p.Status == PaymentStatusFailed
}

// Settlement is what the gateway confirmed for a successful payment.
type Settlement struct {
	SettledAmountInPaise int64
	GatewayFeesInPaise   *int64
	ProviderRef          string
	PaidAt               time.Time
}
