package mongodb

import (
	"context"
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type carDocument struct {
	ID             string                  `bson:"_id"`
	OwnerID        string                  `bson:"owner_id"`
	Listing        entities.ListingDetails `bson:"listing"`
	PaymentStatus  string                  `bson:"payment_status"`
	IsApproved     bool                    `bson:"is_approved"`
	Featured       bool                    `bson:"featured"`
	IsActive       bool                    `bson:"is_active"`
	IsRented       bool                    `bson:"is_rented"`
	ListingDraftID string                  `bson:"listing_draft_id,omitempty"`
	CreatedAt      time.Time               `bson:"created_at"`
	UpdatedAt      time.Time               `bson:"updated_at"`
}

type CarMongoRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ interfaces.ICarRepository = (*CarMongoRepository)(nil)

func NewCarMongoRepository(db *mongo.Database) *CarMongoRepository {
	return &CarMongoRepository{coll: db.Collection(CarsCollection), now: func() time.Time { return time.Now().UTC() }}
}

func (r *CarMongoRepository) Create(ctx context.Context, c entities.Car) (entities.Car, error) {
	if _, err := r.coll.InsertOne(ctx, toCarDocument(c)); err != nil {
		return entities.Car{}, err
	}
	return c, nil
}

func (r *CarMongoRepository) GetByID(ctx context.Context, id string) (entities.Car, error) {
	var doc carDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if isNoDocuments(err) {
		return entities.Car{}, nil
	}
	if err != nil {
		return entities.Car{}, err
	}
	return fromCarDocument(doc), nil
}

func (r *CarMongoRepository) CountActiveApprovedByOwner(ctx context.Context, ownerID string) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"owner_id": ownerID, "is_active": true, "is_approved": true})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *CarMongoRepository) MarkAdPaid(ctx context.Context, id string) (entities.Car, error) {
	var doc carDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"featured":       true,
			"is_approved":    true,
			"payment_status": string(entities.CarPaymentStatusPaid),
			"updated_at":     r.now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if isNoDocuments(err) {
		return entities.Car{}, nil
	}
	if err != nil {
		return entities.Car{}, err
	}
	return fromCarDocument(doc), nil
}

func toCarDocument(c entities.Car) carDocument {
	return carDocument{
		ID:             c.ID,
		OwnerID:        c.OwnerID,
		Listing:        c.Listing,
		PaymentStatus:  string(c.PaymentStatus),
		IsApproved:     c.IsApproved,
		Featured:       c.Featured,
		IsActive:       c.IsActive,
		IsRented:       c.IsRented,
		ListingDraftID: c.ListingDraftID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func fromCarDocument(d carDocument) entities.Car {
	return entities.Car{
		ID:             d.ID,
		OwnerID:        d.OwnerID,
		Listing:        d.Listing,
		PaymentStatus:  entities.CarPaymentStatus(d.PaymentStatus),
		IsApproved:     d.IsApproved,
		Featured:       d.Featured,
		IsActive:       d.IsActive,
		IsRented:       d.IsRented,
		ListingDraftID: d.ListingDraftID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
