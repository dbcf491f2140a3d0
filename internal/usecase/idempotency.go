package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"car_marketplace/internal/domain/entities"
)

// DeriveIdempotencyKey fingerprints a listing submission so a retried request
// maps onto the payment created by the first one.
//
// The key is content-derived: a second listing whose fields are identical to
// an earlier one from the same user resolves to the earlier payment. Callers
// that need two identical listings must change at least one field.
func DeriveIdempotencyKey(userID string, listing entities.ListingDetails, featureAddon bool) string {
	payload := struct {
		UserID       string                  `json:"userId"`
		Listing      entities.ListingDetails `json:"listing"`
		FeatureAddon bool                    `json:"featureAddon"`
	}{
		UserID:       strings.TrimSpace(userID),
		Listing:      canonicalListing(listing),
		FeatureAddon: featureAddon,
	}

	// Struct fields marshal in declaration order, so the encoding is stable.
	b, err := json.Marshal(payload)
	if err != nil {
		// ListingDetails holds only strings, ints and slices; Marshal cannot fail.
		panic(err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// nil and empty slices encode differently; both mean "none".
func canonicalListing(l entities.ListingDetails) entities.ListingDetails {
	if l.Images == nil {
		l.Images = []string{}
	}
	if l.Features == nil {
		l.Features = []string{}
	}
	return l
}

func submissionLockKey(idempotencyKey string) string {
	return "listing-payment:" + idempotencyKey
}
