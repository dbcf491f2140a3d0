package request

import (
	"strings"

	"car_marketplace/internal/domain/entities"
)

// ListingPaymentRequest is the body of create-listing-payment. Older clients
// send the add-on flag as "featureAddon"; either field turns it on.
type ListingPaymentRequest struct {
	ListingDraft *entities.ListingDetails `json:"listingDraft" binding:"required"`
	Feature      bool                     `json:"feature"`
	FeatureAddon bool                     `json:"featureAddon"`
}

func (r ListingPaymentRequest) ResolveFeature() bool {
	return r.Feature || r.FeatureAddon
}

type MembershipPaymentRequest struct {
	Plan string `json:"plan" binding:"required"`
}

func (r MembershipPaymentRequest) ResolvePlan() entities.MembershipPlan {
	return entities.MembershipPlan(strings.ToLower(strings.TrimSpace(r.Plan)))
}

type AdPaymentRequest struct {
	CarID string `json:"carId" binding:"required"`
}

func (r AdPaymentRequest) ResolveCarID() string {
	return strings.TrimSpace(r.CarID)
}
