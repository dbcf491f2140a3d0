package entities

import "time"

// ListingDraftStatus tracks a priced listing while its payment is unresolved.
//
//	payment_pending -> payment_success -> published
//	payment_pending -> payment_failed
//	payment_pending | payment_failed -> cancelled
type ListingDraftStatus string

const (
	ListingDraftStatusPaymentPending ListingDraftStatus = "payment_pending"
	ListingDraftStatusPaymentFailed  ListingDraftStatus = "payment_failed"
	ListingDraftStatusPaymentSuccess ListingDraftStatus = "payment_success"
	ListingDraftStatusPublished      ListingDraftStatus = "published"
	ListingDraftStatusCancelled      ListingDraftStatus = "cancelled"
)

// CarSpecs are the technical attributes shown on a listing.
type CarSpecs struct {
	Transmission string `json:"transmission,omitempty" validate:"omitempty,oneof=manual automatic"`
	FuelType     string `json:"fuelType,omitempty"`
	Seats        int    `json:"seats,omitempty" validate:"omitempty,min=1,max=60"`
	MileageKm    int    `json:"mileageKm,omitempty" validate:"omitempty,min=0"`
	Color        string `json:"color,omitempty"`
}

// ListingDetails is the full field set a user submits for a car listing.
// Images are URLs already uploaded to object storage.
type ListingDetails struct {
	Brand              string   `json:"brand" validate:"required"`
	Model              string   `json:"model" validate:"required"`
	Year               int      `json:"year" validate:"required,min=1950,max=2100"`
	Category           string   `json:"category" validate:"required"`
	PricePerDayInPaise int64    `json:"pricePerDayInPaise" validate:"required,gt=0"`
	Images             []string `json:"images" validate:"omitempty,dive,url"`
	Location           string   `json:"location" validate:"required"`
	City               string   `json:"city" validate:"required"`
	Specs              CarSpecs `json:"specs"`
	Features           []string `json:"features,omitempty"`
	Description        string   `json:"description,omitempty" validate:"max=5000"`
}

// ListingDraft holds a pending listing until its payment resolves.
//
// Invariant: PublishedListingID is non-empty iff Status is published.
// Drafts are never deleted; they are the audit trail of priced submissions.
type ListingDraft struct {
	ID                     string             `json:"id"`
	OwnerID                string             `json:"ownerId"`
	Listing                ListingDetails     `json:"listing"`
	RequestedAmountInPaise int64              `json:"requestedAmountInPaise"`
	FeatureAddon           bool               `json:"featureAddon"`
	IsFirstListing         bool               `json:"isFirstListing"`
	PaymentRef             string             `json:"paymentRef"`
	Status                 ListingDraftStatus `json:"status"`
	PublishedListingID     string             `json:"publishedListingId,omitempty"`
	PublishedAt            *time.Time         `json:"publishedAt,omitempty"`
	CreatedAt              time.Time          `json:"createdAt"`
	UpdatedAt              time.Time          `json:"updatedAt"`
}

func (d ListingDraft) IsPublished() bool {
	return d.PublishedListingID != "" || d.Status == ListingDraftStatusPublished
}

// IsUnresolved reports whether the owner still has something to act on.
func (d ListingDraft) IsUnresolved() bool {
	switch d.Status {
	case ListingDraftStatusPaymentPending, ListingDraftStatusPaymentFailed, ListingDraftStatusPaymentSuccess:
		return true
	}
	return false
}

func (d ListingDraft) CanCancel() bool {
	return d.Status == ListingDraftStatusPaymentPending || d.Status == ListingDraftStatusPaymentFailed
}
