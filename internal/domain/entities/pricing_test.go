package entities

import (
	"testing"
	"time"
)

func TestMoneyHelpers(t *testing.T) {
	if ToPaise(300) != 30000 {
		t.Fatalf("expected 30000")
	}
	if PaiseToUnits(10050) != 100.5 {
		t.Fatalf("expected 100.5")
	}
	if AbsDiff(10000, 10005) != 5 || AbsDiff(10050, 10000) != 50 {
		t.Fatalf("unexpected AbsDiff")
	}
}

func TestMembershipPlanDuration(t *testing.T) {
	d, ok := MembershipPlanBasic.Duration()
	if !ok || d != 30*24*time.Hour {
		t.Fatalf("unexpected basic duration %v", d)
	}
	d, ok = MembershipPlanPremium.Duration()
	if !ok || d != 365*24*time.Hour {
		t.Fatalf("unexpected premium duration %v", d)
	}
	if MembershipPlan("gold").Valid() {
		t.Fatalf("unknown plan must be invalid")
	}
}

func TestListingDraftState(t *testing.T) {
	d := ListingDraft{Status: ListingDraftStatusPaymentPending}
	if d.IsPublished() || !d.IsUnresolved() || !d.CanCancel() {
		t.Fatalf("unexpected pending state")
	}
	d.Status = ListingDraftStatusPublished
	d.PublishedListingID = "car-1"
	if !d.IsPublished() || d.IsUnresolved() || d.CanCancel() {
		t.Fatalf("unexpected published state")
	}
}

func TestNewCarFromDraft(t *testing.T) {
	now := time.Now().UTC()
	d := ListingDraft{ID: "draft-1", OwnerID: "u1", FeatureAddon: true, Listing: ListingDetails{Brand: "Toyota"}}
	car := NewCarFromDraft("car-1", d, now)
	if car.ID != "car-1" || car.OwnerID != "u1" || car.ListingDraftID != "draft-1" {
		t.Fatalf("unexpected ids: %+v", car)
	}
	if !car.IsActive || !car.IsApproved || !car.Featured || car.PaymentStatus != CarPaymentStatusPaid {
		t.Fatalf("unexpected flags: %+v", car)
	}

	free := NewFreeListingCar("car-2", "u1", d.Listing, now)
	if free.PaymentStatus != CarPaymentStatusFree || free.Featured {
		t.Fatalf("unexpected free car: %+v", free)
	}
}
