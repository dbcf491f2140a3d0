package entities

import "time"

type CarPaymentStatus string

const (
	CarPaymentStatusFree    CarPaymentStatus = "free"
	CarPaymentStatusPending CarPaymentStatus = "pending"
	CarPaymentStatusPaid    CarPaymentStatus = "paid"
)

// Car is a published listing.
type Car struct {
	ID             string           `json:"id"`
	OwnerID        string           `json:"ownerId"`
	Listing        ListingDetails   `json:"listing"`
	PaymentStatus  CarPaymentStatus `json:"paymentStatus"`
	IsApproved     bool             `json:"isApproved"`
	Featured       bool             `json:"featured"`
	IsActive       bool             `json:"isActive"`
	IsRented       bool             `json:"isRented"`
	ListingDraftID string           `json:"listingDraftId,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// NewFreeListingCar builds the car created on the first-listing fast path.
func NewFreeListingCar(id, ownerID string, listing ListingDetails, now time.Time) Car {
	return Car{
		ID:            id,
		OwnerID:       ownerID,
		Listing:       listing,
		PaymentStatus: CarPaymentStatusFree,
		IsApproved:    true,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewCarFromDraft builds the live listing for a draft whose payment settled.
func NewCarFromDraft(id string, d ListingDraft, now time.Time) Car {
	return Car{
		ID:             id,
		OwnerID:        d.OwnerID,
		Listing:        d.Listing,
		PaymentStatus:  CarPaymentStatusPaid,
		IsApproved:     true,
		Featured:       d.FeatureAddon,
		IsActive:       true,
		ListingDraftID: d.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
