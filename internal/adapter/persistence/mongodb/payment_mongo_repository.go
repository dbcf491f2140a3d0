package mongodb

import (
	"context"
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type paymentDocument struct {
	ID                     string         `bson:"_id"`
	PayerID                string         `bson:"payer_id"`
	Type                   string         `bson:"type"`
	RequestedAmountInPaise int64          `bson:"requested_amount_in_paise"`
	SettledAmountInPaise   *int64         `bson:"settled_amount_in_paise,omitempty"`
	GatewayFeesInPaise     *int64         `bson:"gateway_fees_in_paise,omitempty"`
	Currency               string         `bson:"currency"`
	Status                 string         `bson:"status"`
	Provider               string         `bson:"provider"`
	ProviderRef            string         `bson:"provider_ref,omitempty"`
	OrderID                string         `bson:"order_id"`
	IdempotencyKey         string         `bson:"idempotency_key,omitempty"`
	ListingDraftID         string         `bson:"listing_draft_id,omitempty"`
	CarID                  string         `bson:"car_id,omitempty"`
	Plan                   string         `bson:"plan,omitempty"`
	CheckoutURL            string         `bson:"checkout_url,omitempty"`
	WebhookReceived        bool           `bson:"webhook_received"`
	FailureReason          string         `bson:"failure_reason,omitempty"`
	Metadata               map[string]any `bson:"metadata,omitempty"`
	PaidAt                 *time.Time     `bson:"paid_at,omitempty"`
	FailedAt               *time.Time     `bson:"failed_at,omitempty"`
	CreatedAt              time.Time      `bson:"created_at"`
	UpdatedAt              time.Time      `bson:"updated_at"`
}

// PaymentMongoRepository persists Payment documents. Idempotency key
// uniqueness comes from the unique index created by EnsureIndexes.
type PaymentMongoRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ interfaces.IPaymentRepository = (*PaymentMongoRepository)(nil)

func NewPaymentMongoRepository(db *mongo.Database) *PaymentMongoRepository {
	return &PaymentMongoRepository{
		coll: db.Collection(PaymentsCollection),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *PaymentMongoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	_, err := r.coll.InsertOne(ctx, toPaymentDocument(p))
	if err != nil {
		return entities.Payment{}, mapPaymentInsertError(p, err)
	}
	return p, nil
}

func mapPaymentInsertError(p entities.Payment, err error) error {
	if p.IdempotencyKey != "" && mongo.IsDuplicateKeyError(err) {
		return interfaces.ErrDuplicateIdempotencyKey
	}
	return err
}

func (r *PaymentMongoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *PaymentMongoRepository) GetByOrderID(ctx context.Context, orderID string) (entities.Payment, error) {
	return r.findOne(ctx, bson.M{"order_id": orderID})
}

func (r *PaymentMongoRepository) GetByIdempotencyKey(ctx context.Context, key string) (entities.Payment, error) {
	return r.findOne(ctx, bson.M{"idempotency_key": key})
}

func (r *PaymentMongoRepository) findOne(ctx context.Context, filter bson.M) (entities.Payment, error) {
	var doc paymentDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if isNoDocuments(err) {
		return entities.Payment{}, nil
	}
	if err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentDocument(doc), nil
}

func (r *PaymentMongoRepository) SetCheckoutURL(ctx context.Context, id, checkoutURL, providerRef string) error {
	set := bson.M{"checkout_url": checkoutURL, "updated_at": r.now()}
	if providerRef != "" {
		set["provider_ref"] = providerRef
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func (r *PaymentMongoRepository) MarkSucceeded(ctx context.Context, id string, s entities.Settlement) (bool, error) {
	set := bson.M{
		"status":                  string(entities.PaymentStatusSucceeded),
		"settled_amount_in_paise": s.SettledAmountInPaise,
		"paid_at":                 s.PaidAt,
		"updated_at":              r.now(),
	}
	if s.GatewayFeesInPaise != nil {
		set["gateway_fees_in_paise"] = *s.GatewayFeesInPaise
	}
	if s.ProviderRef != "" {
		set["provider_ref"] = s.ProviderRef
	}
	return r.updatePending(ctx, id, set)
}

func (r *PaymentMongoRepository) MarkFailed(ctx context.Context, id, reason string, at time.Time) (bool, error) {
	return r.updatePending(ctx, id, bson.M{
		"status":         string(entities.PaymentStatusFailed),
		"failure_reason": reason,
		"failed_at":      at,
		"updated_at":     r.now(),
	})
}

func (r *PaymentMongoRepository) updatePending(ctx context.Context, id string, set bson.M) (bool, error) {
	res, err := r.coll.UpdateOne(ctx, pendingPaymentFilter(id), bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func pendingPaymentFilter(id string) bson.M {
	return bson.M{"_id": id, "status": string(entities.PaymentStatusPending)}
}

func (r *PaymentMongoRepository) RecordWebhook(ctx context.Context, id string, payload map[string]any) error {
	set := bson.M{"webhook_received": true, "updated_at": r.now()}
	if payload != nil {
		set["metadata.last_webhook"] = payload
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func toPaymentDocument(p entities.Payment) paymentDocument {
	return paymentDocument{
		ID:                     p.ID,
		PayerID:                p.PayerID,
		Type:                   string(p.Type),
		RequestedAmountInPaise: p.RequestedAmountInPaise,
		SettledAmountInPaise:   p.SettledAmountInPaise,
		GatewayFeesInPaise:     p.GatewayFeesInPaise,
		Currency:               p.Currency,
		Status:                 string(p.Status),
		Provider:               p.Provider,
		ProviderRef:            p.ProviderRef,
		OrderID:                p.OrderID,
		IdempotencyKey:         p.IdempotencyKey,
		ListingDraftID:         p.ListingDraftID,
		CarID:                  p.CarID,
		Plan:                   string(p.Plan),
		CheckoutURL:            p.CheckoutURL,
		WebhookReceived:        p.WebhookReceived,
		FailureReason:          p.FailureReason,
		Metadata:               p.Metadata,
		PaidAt:                 p.PaidAt,
		FailedAt:               p.FailedAt,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func fromPaymentDocument(d paymentDocument) entities.Payment {
	return entities.Payment{
		ID:                     d.ID,
		PayerID:                d.PayerID,
		Type:                   entities.PaymentType(d.Type),
		RequestedAmountInPaise: d.RequestedAmountInPaise,
		SettledAmountInPaise:   d.SettledAmountInPaise,
		GatewayFeesInPaise:     d.GatewayFeesInPaise,
		Currency:               d.Currency,
		Status:                 entities.PaymentStatus(d.Status),
		Provider:               d.Provider,
		ProviderRef:            d.ProviderRef,
		OrderID:                d.OrderID,
		IdempotencyKey:         d.IdempotencyKey,
		ListingDraftID:         d.ListingDraftID,
		CarID:                  d.CarID,
		Plan:                   entities.MembershipPlan(d.Plan),
		CheckoutURL:            d.CheckoutURL,
		WebhookReceived:        d.WebhookReceived,
		FailureReason:          d.FailureReason,
		Metadata:               d.Metadata,
		PaidAt:                 d.PaidAt,
		FailedAt:               d.FailedAt,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
}
