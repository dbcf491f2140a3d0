package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func samplePayment() entities.Payment {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return entities.Payment{
		ID:                     "pay-1",
		PayerID:                "user-1",
		Type:                   entities.PaymentTypeListing,
		RequestedAmountInPaise: 30000,
		Currency:               "PKR",
		Status:                 entities.PaymentStatusPending,
		Provider:               "safepay",
		OrderID:                "LST-ABC",
		IdempotencyKey:         "key-1",
		ListingDraftID:         "draft-1",
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

func TestPaymentDynamoRepository_Create(t *testing.T) {
	t.Run("writes payment and idempotency key in one transaction", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewPaymentDynamoRepository(ddb, "payments", "payment_idempotency")

		if _, err := repo.Create(context.Background(), samplePayment()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ddb.transact) != 1 || len(ddb.puts) != 0 {
			t.Fatalf("expected one transaction, got %d transactions %d puts", len(ddb.transact), len(ddb.puts))
		}
		items := ddb.transact[0].TransactItems
		if len(items) != 2 {
			t.Fatalf("expected 2 transact items, got %d", len(items))
		}
		if *items[1].Put.TableName != "payment_idempotency" {
			t.Fatalf("unexpected idempotency table %s", *items[1].Put.TableName)
		}
	})

	t.Run("duplicate idempotency key", func(t *testing.T) {
		ddb := &fakeDynamo{transactErr: cancelledAt(1, 2)}
		repo := NewPaymentDynamoRepository(ddb, "payments", "payment_idempotency")

		_, err := repo.Create(context.Background(), samplePayment())
		if !errors.Is(err, interfaces.ErrDuplicateIdempotencyKey) {
			t.Fatalf("expected ErrDuplicateIdempotencyKey, got %v", err)
		}
	})

	t.Run("no key uses a plain put", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewPaymentDynamoRepository(ddb, "payments", "payment_idempotency")

		p := samplePayment()
		p.IdempotencyKey = ""
		if _, err := repo.Create(context.Background(), p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ddb.puts) != 1 || len(ddb.transact) != 0 {
			t.Fatalf("expected one put")
		}
	})
}

func TestPaymentDynamoRepository_GetByID(t *testing.T) {
	p := samplePayment()
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	ddb := &fakeDynamo{getItems: []map[string]types.AttributeValue{av}}
	repo := NewPaymentDynamoRepository(ddb, "payments", "payment_idempotency")

	got, err := repo.GetByID(context.Background(), "pay-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != p.ID || got.OrderID != p.OrderID || got.Status != p.Status || !got.CreatedAt.Equal(p.CreatedAt) {
		t.Fatalf("unexpected payment %+v", got)
	}

	missing, err := repo.GetByID(context.Background(), "nope")
	if err != nil || missing.ID != "" {
		t.Fatalf("expected zero payment, got %+v err=%v", missing, err)
	}
}

func TestPaymentDynamoRepository_GetByOrderID(t *testing.T) {
	p := samplePayment()
	av, _ := attributevalue.MarshalMap(toPaymentItem(p))
	ddb := &fakeDynamo{
		queryPages: []*dynamodb.QueryOutput{{Items: []map[string]types.AttributeValue{{"id": strAV("pay-1")}}}},
		getItems:   []map[string]types.AttributeValue{av},
	}
	repo := NewPaymentDynamoRepository(ddb, "payments", "payment_idempotency")

	got, err := repo.GetByOrderID(context.Background(), "LST-ABC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "pay-1" {
		t.Fatalf("expected pay-1, got %q", got.ID)
	}
	if *ddb.queries[0].IndexName != indexOrderID {
		t.Fatalf("expected order id index, got %s", *ddb.queries[0].IndexName)
	}
}

func TestPaymentDynamoRepository_MarkSucceeded(t *testing.T) {
	settled := entities.Settlement{SettledAmountInPaise: 30000, PaidAt: time.Now().UTC()}

	tests := []struct {
		name      string
		updateErr error
		want      bool
		wantErr   bool
	}{
		{name: "applied", want: true},
		{name: "already resolved", updateErr: conditionFailed(), want: false},
		{name: "store error", updateErr: errors.New("throttled"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ddb := &fakeDynamo{updateErr: tt.updateErr}
			repo := NewPaymentDynamoRepository(ddb, "payments", "payment_idempotency")

			got, err := repo.MarkSucceeded(context.Background(), "pay-1", settled)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if *ddb.updates[0].ConditionExpression != "#status = :pending" {
				t.Fatalf("unexpected condition %s", *ddb.updates[0].ConditionExpression)
			}
		})
	}
}
