package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func sampleDraft(id string) entities.ListingDraft {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return entities.ListingDraft{
		ID:      id,
		OwnerID: "user-1",
		Listing: entities.ListingDetails{
			Brand: "Toyota", Model: "Corolla", Year: 2021, Category: "sedan",
			PricePerDayInPaise: 500000, Location: "DHA", City: "Lahore",
			Images: []string{"https://cdn.example.com/1.jpg"},
		},
		RequestedAmountInPaise: 30000,
		FeatureAddon:           true,
		PaymentRef:             "LST-1",
		Status:                 entities.ListingDraftStatusPaymentPending,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

func TestListingDraftDynamoRepository_ListByOwnerPaginates(t *testing.T) {
	a, _ := attributevalue.MarshalMap(toListingDraftItem(sampleDraft("d1")))
	b, _ := attributevalue.MarshalMap(toListingDraftItem(sampleDraft("d2")))
	ddb := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{
		{Items: []map[string]types.AttributeValue{a}, LastEvaluatedKey: map[string]types.AttributeValue{"id": strAV("d1")}},
		{Items: []map[string]types.AttributeValue{b}},
	}}
	repo := NewListingDraftDynamoRepository(ddb, "listing_drafts", "cars")

	drafts, err := repo.ListByOwner(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 2 || drafts[0].ID != "d1" || drafts[1].ID != "d2" {
		t.Fatalf("unexpected drafts %+v", drafts)
	}
	if drafts[0].Listing.Brand != "Toyota" || len(drafts[0].Listing.Images) != 1 {
		t.Fatalf("listing not round-tripped: %+v", drafts[0].Listing)
	}
	if len(ddb.queries) != 2 || ddb.queries[1].ExclusiveStartKey == nil {
		t.Fatalf("expected second page query with start key")
	}
	if *ddb.queries[0].IndexName != indexOwnerID {
		t.Fatalf("unexpected index %s", *ddb.queries[0].IndexName)
	}
}

func TestListingDraftDynamoRepository_TransitionStatus(t *testing.T) {
	t.Run("builds IN condition", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewListingDraftDynamoRepository(ddb, "listing_drafts", "cars")

		ok, err := repo.TransitionStatus(context.Background(), "d1",
			[]entities.ListingDraftStatus{entities.ListingDraftStatusPaymentPending, entities.ListingDraftStatusPaymentFailed},
			entities.ListingDraftStatusCancelled)
		if err != nil || !ok {
			t.Fatalf("expected applied, got %v %v", ok, err)
		}
		cond := *ddb.updates[0].ConditionExpression
		if !strings.Contains(cond, "#status IN (:f0, :f1)") {
			t.Fatalf("unexpected condition %s", cond)
		}
	})

	t.Run("condition failure is not an error", func(t *testing.T) {
		ddb := &fakeDynamo{updateErr: conditionFailed()}
		repo := NewListingDraftDynamoRepository(ddb, "listing_drafts", "cars")

		ok, err := repo.TransitionStatus(context.Background(), "d1",
			[]entities.ListingDraftStatus{entities.ListingDraftStatusPaymentPending},
			entities.ListingDraftStatusPaymentFailed)
		if err != nil || ok {
			t.Fatalf("expected not applied, got %v %v", ok, err)
		}
	})

	t.Run("empty source set", func(t *testing.T) {
		repo := NewListingDraftDynamoRepository(&fakeDynamo{}, "listing_drafts", "cars")
		if _, err := repo.TransitionStatus(context.Background(), "d1", nil, entities.ListingDraftStatusCancelled); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestListingDraftDynamoRepository_Publish(t *testing.T) {
	now := time.Now().UTC()
	car := entities.NewCarFromDraft("car-1", sampleDraft("d1"), now)

	t.Run("car insert and draft stamp share a transaction", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewListingDraftDynamoRepository(ddb, "listing_drafts", "cars")

		got, err := repo.Publish(context.Background(), "d1", car, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "car-1" {
			t.Fatalf("unexpected car %+v", got)
		}
		items := ddb.transact[0].TransactItems
		if len(items) != 2 || items[0].Put == nil || items[1].Update == nil {
			t.Fatalf("unexpected transact items %+v", items)
		}
		if *items[0].Put.TableName != "cars" || *items[1].Update.TableName != "listing_drafts" {
			t.Fatalf("unexpected tables")
		}
		if !strings.Contains(*items[1].Update.ConditionExpression, "attribute_not_exists(published_listing_id)") {
			t.Fatalf("draft update must be conditional on not yet published")
		}
	})

	t.Run("already published", func(t *testing.T) {
		ddb := &fakeDynamo{transactErr: cancelledAt(1, 2)}
		repo := NewListingDraftDynamoRepository(ddb, "listing_drafts", "cars")

		_, err := repo.Publish(context.Background(), "d1", car, now)
		if !errors.Is(err, interfaces.ErrDraftAlreadyPublished) {
			t.Fatalf("expected ErrDraftAlreadyPublished, got %v", err)
		}
	})

	t.Run("other transaction failure", func(t *testing.T) {
		ddb := &fakeDynamo{transactErr: cancelledAt(0, 2)}
		repo := NewListingDraftDynamoRepository(ddb, "listing_drafts", "cars")

		_, err := repo.Publish(context.Background(), "d1", car, now)
		if err == nil || errors.Is(err, interfaces.ErrDraftAlreadyPublished) {
			t.Fatalf("expected raw transaction error, got %v", err)
		}
	})
}
