package mongodb

import (
	"errors"
	"testing"
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMapPaymentInsertError(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
	other := errors.New("connection reset")

	tests := []struct {
		name    string
		key     string
		err     error
		wantDup bool
	}{
		{name: "duplicate with key", key: "k1", err: dup, wantDup: true},
		{name: "duplicate without key", key: "", err: dup, wantDup: false},
		{name: "other error", key: "k1", err: other, wantDup: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapPaymentInsertError(entities.Payment{IdempotencyKey: tt.key}, tt.err)
			if errors.Is(got, interfaces.ErrDuplicateIdempotencyKey) != tt.wantDup {
				t.Fatalf("unexpected mapping: %v", got)
			}
		})
	}
}

func TestPaymentDocumentRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	settled := int64(30000)
	p := entities.Payment{
		ID: "pay-1", PayerID: "user-1", Type: entities.PaymentTypeListing,
		RequestedAmountInPaise: 30000, SettledAmountInPaise: &settled,
		Currency: "PKR", Status: entities.PaymentStatusSucceeded, OrderID: "LST-1",
		IdempotencyKey: "k1", ListingDraftID: "draft-1", PaidAt: &now,
		CreatedAt: now, UpdatedAt: now,
	}

	raw, err := bson.Marshal(toPaymentDocument(p))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc paymentDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := fromPaymentDocument(doc)

	if got.ID != p.ID || got.OrderID != p.OrderID || got.Status != p.Status {
		t.Fatalf("unexpected payment %+v", got)
	}
	if got.SettledAmountInPaise == nil || *got.SettledAmountInPaise != settled {
		t.Fatalf("settled amount lost")
	}
	if got.PaidAt == nil || !got.PaidAt.Equal(now) {
		t.Fatalf("paid at lost")
	}
}

func TestListingDraftDocumentOmitsPublishedID(t *testing.T) {
	d := entities.ListingDraft{ID: "draft-1", OwnerID: "user-1", Status: entities.ListingDraftStatusPaymentPending}

	raw, err := bson.Marshal(toListingDraftDocument(d))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := bson.Raw(raw).LookupErr("published_listing_id"); err == nil {
		t.Fatalf("unpublished draft must not carry published_listing_id; Publish filters on its absence")
	}
}

func TestUserDocumentConversion(t *testing.T) {
	exp := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	u := fromUserDocument(userDocument{
		ID: "user-1", Email: "a@example.com",
		Membership: membershipDocument{Plan: "premium", Active: true, ExpiresAt: &exp, PaymentID: "pay-9"},
	})
	if u.Membership.Plan != entities.MembershipPlanPremium || u.Membership.PaymentID != "pay-9" {
		t.Fatalf("unexpected membership %+v", u.Membership)
	}
}
