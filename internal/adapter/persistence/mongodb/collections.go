package mongodb

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PaymentsCollection      = "payments"
	ListingDraftsCollection = "listing_drafts"
	CarsCollection          = "cars"
	UsersCollection         = "users"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// idempotency_key index is what turns a racing duplicate insert into
// interfaces.ErrDuplicateIdempotencyKey.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		PaymentsCollection: {
			{
				Keys: bson.D{{Key: "idempotency_key", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_idempotency_key").
					SetPartialFilterExpression(bson.M{"idempotency_key": bson.M{"$type": "string"}}),
			},
			{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_order_id")},
			{Keys: bson.D{{Key: "listing_draft_id", Value: 1}}, Options: options.Index().SetName("listing_draft_id")},
		},
		ListingDraftsCollection: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("owner_created")},
			{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("status")},
		},
		CarsCollection: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "is_active", Value: 1}, {Key: "is_approved", Value: 1}}, Options: options.Index().SetName("owner_active_approved")},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			log.Printf("[database][mongo] ensure indexes failed collection=%s err=%v", coll, err)
			return err
		}
	}
	return nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
