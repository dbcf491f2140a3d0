package request

import (
	"encoding/json"
	"testing"

	"car_marketplace/internal/domain/entities"
)

func TestListingPaymentRequest_ResolveFeature(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "feature", body: `{"listingDraft":{},"feature":true}`, want: true},
		{name: "featureAddon alias", body: `{"listingDraft":{},"featureAddon":true}`, want: true},
		{name: "neither", body: `{"listingDraft":{}}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ListingPaymentRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if req.ResolveFeature() != tt.want {
				t.Fatalf("expected %v", tt.want)
			}
		})
	}
}

func TestMembershipPaymentRequest_ResolvePlan(t *testing.T) {
	if got := (MembershipPaymentRequest{Plan: "  Premium "}).ResolvePlan(); got != entities.MembershipPlanPremium {
		t.Fatalf("unexpected plan %q", got)
	}
}

func TestAdPaymentRequest_ResolveCarID(t *testing.T) {
	if got := (AdPaymentRequest{CarID: " car-1 "}).ResolveCarID(); got != "car-1" {
		t.Fatalf("unexpected car id %q", got)
	}
}
