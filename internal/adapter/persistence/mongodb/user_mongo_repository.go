package mongodb

import (
	"context"
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type membershipDocument struct {
	Plan      string     `bson:"plan,omitempty"`
	Active    bool       `bson:"active"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
	PaymentID string     `bson:"payment_id,omitempty"`
}

type userDocument struct {
	ID         string             `bson:"_id"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Phone      string             `bson:"phone,omitempty"`
	Membership membershipDocument `bson:"membership"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

type UserMongoRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ interfaces.IUserRepository = (*UserMongoRepository)(nil)

func NewUserMongoRepository(db *mongo.Database) *UserMongoRepository {
	return &UserMongoRepository{coll: db.Collection(UsersCollection), now: func() time.Time { return time.Now().UTC() }}
}

func (r *UserMongoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if isNoDocuments(err) {
		return entities.User{}, nil
	}
	if err != nil {
		return entities.User{}, err
	}
	return fromUserDocument(doc), nil
}

// ActivateMembership matches nothing when the stored membership already
// carries membership.PaymentID, so redelivered webhooks do not extend it again.
func (r *UserMongoRepository) ActivateMembership(ctx context.Context, userID string, membership entities.Membership) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		membershipActivationFilter(userID, membership.PaymentID),
		bson.M{"$set": bson.M{"membership": toMembershipDocument(membership), "updated_at": r.now()}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 1 {
		return true, nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, interfaces.ErrUserNotFound
	}
	return false, nil
}

func membershipActivationFilter(userID, paymentID string) bson.M {
	return bson.M{"_id": userID, "membership.payment_id": bson.M{"$ne": paymentID}}
}

func toMembershipDocument(m entities.Membership) membershipDocument {
	return membershipDocument{
		Plan:      string(m.Plan),
		Active:    m.Active,
		ExpiresAt: m.ExpiresAt,
		PaymentID: m.PaymentID,
	}
}

func fromUserDocument(d userDocument) entities.User {
	return entities.User{
		ID:    d.ID,
		Name:  d.Name,
		Email: d.Email,
		Phone: d.Phone,
		Membership: entities.Membership{
			Plan:      entities.MembershipPlan(d.Membership.Plan),
			Active:    d.Membership.Active,
			ExpiresAt: d.Membership.ExpiresAt,
			PaymentID: d.Membership.PaymentID,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
