package mongodb

import (
	"context"
	"errors"
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type listingDraftDocument struct {
	ID                     string                  `bson:"_id"`
	OwnerID                string                  `bson:"owner_id"`
	Listing                entities.ListingDetails `bson:"listing"`
	RequestedAmountInPaise int64                   `bson:"requested_amount_in_paise"`
	FeatureAddon           bool                    `bson:"feature_addon"`
	IsFirstListing         bool                    `bson:"is_first_listing"`
	PaymentRef             string                  `bson:"payment_ref"`
	Status                 string                  `bson:"status"`
	PublishedListingID     string                  `bson:"published_listing_id,omitempty"`
	PublishedAt            *time.Time              `bson:"published_at,omitempty"`
	CreatedAt              time.Time               `bson:"created_at"`
	UpdatedAt              time.Time               `bson:"updated_at"`
}

// ListingDraftMongoRepository keeps drafts in their own collection. Publish
// runs inside a multi-document transaction together with the car insert.
type ListingDraftMongoRepository struct {
	client *mongo.Client
	drafts *mongo.Collection
	cars   *mongo.Collection
	now    func() time.Time
}

var _ interfaces.IListingDraftRepository = (*ListingDraftMongoRepository)(nil)

func NewListingDraftMongoRepository(client *mongo.Client, db *mongo.Database) *ListingDraftMongoRepository {
	return &ListingDraftMongoRepository{
		client: client,
		drafts: db.Collection(ListingDraftsCollection),
		cars:   db.Collection(CarsCollection),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *ListingDraftMongoRepository) Create(ctx context.Context, d entities.ListingDraft) (entities.ListingDraft, error) {
	if _, err := r.drafts.InsertOne(ctx, toListingDraftDocument(d)); err != nil {
		return entities.ListingDraft{}, err
	}
	return d, nil
}

func (r *ListingDraftMongoRepository) GetByID(ctx context.Context, id string) (entities.ListingDraft, error) {
	var doc listingDraftDocument
	err := r.drafts.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if isNoDocuments(err) {
		return entities.ListingDraft{}, nil
	}
	if err != nil {
		return entities.ListingDraft{}, err
	}
	return fromListingDraftDocument(doc), nil
}

func (r *ListingDraftMongoRepository) ListByOwner(ctx context.Context, ownerID string) ([]entities.ListingDraft, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID})
}

func (r *ListingDraftMongoRepository) ListByStatus(ctx context.Context, status entities.ListingDraftStatus) ([]entities.ListingDraft, error) {
	return r.find(ctx, bson.M{"status": string(status)})
}

func (r *ListingDraftMongoRepository) find(ctx context.Context, filter bson.M) ([]entities.ListingDraft, error) {
	cur, err := r.drafts.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []listingDraftDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	drafts := make([]entities.ListingDraft, 0, len(docs))
	for _, doc := range docs {
		drafts = append(drafts, fromListingDraftDocument(doc))
	}
	return drafts, nil
}

func (r *ListingDraftMongoRepository) TransitionStatus(ctx context.Context, id string, from []entities.ListingDraftStatus, to entities.ListingDraftStatus) (bool, error) {
	if len(from) == 0 {
		return false, errors.New("transition requires at least one source status")
	}

	res, err := r.drafts.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": statusStrings(from)}},
		bson.M{"$set": bson.M{"status": string(to), "updated_at": r.now()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *ListingDraftMongoRepository) Publish(ctx context.Context, draftID string, car entities.Car, publishedAt time.Time) (entities.Car, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return entities.Car{}, err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, r.publishDraft(sc, draftID, car, publishedAt)
	})
	if err != nil {
		return entities.Car{}, err
	}
	return car, nil
}

// publishDraft marks the draft published and inserts its car. Callers run it
// inside a transaction so a failed insert also rolls back the draft.
func (r *ListingDraftMongoRepository) publishDraft(ctx context.Context, draftID string, car entities.Car, publishedAt time.Time) error {
	res, err := r.drafts.UpdateOne(ctx,
		unpublishedDraftFilter(draftID),
		bson.M{"$set": bson.M{
			"status":               string(entities.ListingDraftStatusPublished),
			"published_listing_id": car.ID,
			"published_at":         publishedAt,
			"updated_at":           publishedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return interfaces.ErrDraftAlreadyPublished
	}

	_, err = r.cars.InsertOne(ctx, toCarDocument(car))
	return err
}

func unpublishedDraftFilter(draftID string) bson.M {
	return bson.M{"_id": draftID, "published_listing_id": bson.M{"$exists": false}}
}

func statusStrings(in []entities.ListingDraftStatus) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}

func toListingDraftDocument(d entities.ListingDraft) listingDraftDocument {
	return listingDraftDocument{
		ID:                     d.ID,
		OwnerID:                d.OwnerID,
		Listing:                d.Listing,
		RequestedAmountInPaise: d.RequestedAmountInPaise,
		FeatureAddon:           d.FeatureAddon,
		IsFirstListing:         d.IsFirstListing,
		PaymentRef:             d.PaymentRef,
		Status:                 string(d.Status),
		PublishedListingID:     d.PublishedListingID,
		PublishedAt:            d.PublishedAt,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
}

func fromListingDraftDocument(doc listingDraftDocument) entities.ListingDraft {
	return entities.ListingDraft{
		ID:                     doc.ID,
		OwnerID:                doc.OwnerID,
		Listing:                doc.Listing,
		RequestedAmountInPaise: doc.RequestedAmountInPaise,
		FeatureAddon:           doc.FeatureAddon,
		IsFirstListing:         doc.IsFirstListing,
		PaymentRef:             doc.PaymentRef,
		Status:                 entities.ListingDraftStatus(doc.Status),
		PublishedListingID:     doc.PublishedListingID,
		PublishedAt:            doc.PublishedAt,
		CreatedAt:              doc.CreatedAt,
		UpdatedAt:              doc.UpdatedAt,
	}
}
