package response

import (
	"encoding/json"
	"strings"
	"testing"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase"
)

func TestFromListingPaymentResult(t *testing.T) {
	t.Run("free listing hides checkout fields", func(t *testing.T) {
		out := FromListingPaymentResult(usecase.ListingPaymentResult{FreeListing: true, CarID: "car-1"})
		raw, _ := json.Marshal(out)
		if string(raw) != `{"freeListing":true,"carId":"car-1"}` {
			t.Fatalf("unexpected body %s", raw)
		}
	})

	t.Run("paid listing carries pricing", func(t *testing.T) {
		out := FromListingPaymentResult(usecase.ListingPaymentResult{
			CheckoutResult: usecase.CheckoutResult{PaymentID: "pay-1", OrderID: "LST-1", CheckoutURL: "https://pay", AmountInPaise: 30000},
			ListingDraftID: "draft-1",
			Pricing:        entities.PricingQuote{BaseCost: 100, FeatureCost: 200, TotalCost: 300, TotalInPaise: 30000},
		})
		raw, _ := json.Marshal(out)
		body := string(raw)
		for _, want := range []string{`"paymentId":"pay-1"`, `"checkout_url":"https://pay"`, `"amount_in_paise":30000`, `"totalCost":300`} {
			if !strings.Contains(body, want) {
				t.Fatalf("expected %s in %s", want, body)
			}
		}
		if strings.Contains(body, "freeListing") {
			t.Fatalf("paid response must not carry freeListing: %s", body)
		}
	})
}

func TestFromPaymentStatus(t *testing.T) {
	draft := entities.ListingDraft{ID: "draft-1", Status: entities.ListingDraftStatusPublished, PublishedListingID: "car-1"}
	out := FromPaymentStatus(usecase.PaymentStatusSnapshot{
		Payment: entities.Payment{ID: "pay-1", Status: entities.PaymentStatusSucceeded, IdempotencyKey: "secret-ish", RequestedAmountInPaise: 30000},
		Draft:   &draft,
		CarID:   "car-1",
	})
	if out.ListingDraft == nil || out.ListingDraft.PublishedListingID != "car-1" || out.CarID != "car-1" {
		t.Fatalf("unexpected snapshot %+v", out)
	}
	raw, _ := json.Marshal(out)
	if strings.Contains(string(raw), "secret-ish") {
		t.Fatalf("idempotency key leaked: %s", raw)
	}
}
