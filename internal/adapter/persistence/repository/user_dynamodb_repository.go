package repository

import (
	"context"
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type membershipItem struct {
	Plan      string `dynamodbav:"plan,omitempty"`
	Active    bool   `dynamodbav:"active"`
	ExpiresAt string `dynamodbav:"expires_at,omitempty"`
	PaymentID string `dynamodbav:"payment_id,omitempty"`
}

type userItem struct {
	ID         string         `dynamodbav:"id"`
	Name       string         `dynamodbav:"name"`
	Email      string         `dynamodbav:"email"`
	Phone      string         `dynamodbav:"phone,omitempty"`
	Membership membershipItem `dynamodbav:"membership"`
	CreatedAt  string         `dynamodbav:"created_at"`
	UpdatedAt  string         `dynamodbav:"updated_at"`
}

// UserDynamoRepository reads contact data and writes membership fields.
//
// Table requirements:
//   - PK: id (string)

type UserDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb DynamoAPI, tableName string) *UserDynamoRepository {
	return &UserDynamoRepository{ddb: ddb, tableName: tableName, now: func() time.Time { return time.Now().UTC() }}
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       map[string]types.AttributeValue{"id": strAV(id)},
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

// ActivateMembership overwrites the membership unless it was already set by
// the same payment.
func (r *UserDynamoRepository) ActivateMembership(ctx context.Context, userID string, membership entities.Membership) (bool, error) {
	av, err := attributevalue.Marshal(toMembershipItem(membership))
	if err != nil {
		return false, err
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 map[string]types.AttributeValue{"id": strAV(userID)},
		UpdateExpression:    aws.String("SET membership = :m, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id) AND (attribute_not_exists(membership.payment_id) OR membership.payment_id <> :pid)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":m":   av,
			":pid": strAV(membership.PaymentID),
			":now": strAV(formatTime(r.now())),
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if isConditionalCheckFailed(err) {
		if len(conditionFailedItem(err)) == 0 {
			return false, interfaces.ErrUserNotFound
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func toMembershipItem(m entities.Membership) membershipItem {
	return membershipItem{
		Plan:      string(m.Plan),
		Active:    m.Active,
		ExpiresAt: formatTimePtr(m.ExpiresAt),
		PaymentID: m.PaymentID,
	}
}

func fromUserItem(it userItem) entities.User {
	return entities.User{
		ID:    it.ID,
		Name:  it.Name,
		Email: it.Email,
		Phone: it.Phone,
		Membership: entities.Membership{
			Plan:      entities.MembershipPlan(it.Membership.Plan),
			Active:    it.Membership.Active,
			ExpiresAt: parseTimePtr(it.Membership.ExpiresAt),
			PaymentID: it.Membership.PaymentID,
		},
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}
