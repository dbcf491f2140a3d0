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

type carItem struct {
	ID             string                  `dynamodbav:"id"`
	OwnerID        string                  `dynamodbav:"owner_id"`
	Listing        entities.ListingDetails `dynamodbav:"listing"`
	PaymentStatus  string                  `dynamodbav:"payment_status"`
	IsApproved     bool                    `dynamodbav:"is_approved"`
	Featured       bool                    `dynamodbav:"featured"`
	IsActive       bool                    `dynamodbav:"is_active"`
	IsRented       bool                    `dynamodbav:"is_rented"`
	ListingDraftID string                  `dynamodbav:"listing_draft_id,omitempty"`
	CreatedAt      string                  `dynamodbav:"created_at"`
	UpdatedAt      string                  `dynamodbav:"updated_at"`
}

// CarDynamoRepository covers the car operations the payment flows need.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: owner_id-index (PK: owner_id)

type CarDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.ICarRepository = (*CarDynamoRepository)(nil)

func NewCarDynamoRepository(ddb DynamoAPI, tableName string) *CarDynamoRepository {
	return &CarDynamoRepository{ddb: ddb, tableName: tableName, now: func() time.Time { return time.Now().UTC() }}
}

func (r *CarDynamoRepository) Create(ctx context.Context, c entities.Car) (entities.Car, error) {
	av, err := attributevalue.MarshalMap(toCarItem(c))
	if err != nil {
		return entities.Car{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.Car{}, err
	}
	return c, nil
}

func (r *CarDynamoRepository) GetByID(ctx context.Context, id string) (entities.Car, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": strAV(id)},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Car{}, err
	}
	if len(out.Item) == 0 {
		return entities.Car{}, nil
	}

	var it carItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Car{}, err
	}
	return fromCarItem(it), nil
}

func (r *CarDynamoRepository) CountActiveApprovedByOwner(ctx context.Context, ownerID string) (int, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexOwnerID),
		KeyConditionExpression: aws.String("owner_id = :oid"),
		FilterExpression:       aws.String("is_active = :yes AND is_approved = :yes"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": strAV(ownerID),
			":yes": &types.AttributeValueMemberBOOL{Value: true},
		},
		Select: types.SelectCount,
	}

	total := 0
	for {
		out, err := r.ddb.Query(ctx, in)
		if err != nil {
			return 0, err
		}
		total += int(out.Count)
		if len(out.LastEvaluatedKey) == 0 {
			return total, nil
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// MarkAdPaid features an existing car. A missing car yields a zero Car.
func (r *CarDynamoRepository) MarkAdPaid(ctx context.Context, id string) (entities.Car, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 map[string]types.AttributeValue{"id": strAV(id)},
		UpdateExpression:    aws.String("SET featured = :yes, is_approved = :yes, payment_status = :paid, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":yes":  &types.AttributeValueMemberBOOL{Value: true},
			":paid": strAV(string(entities.CarPaymentStatusPaid)),
			":now":  strAV(formatTime(r.now())),
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return entities.Car{}, nil
	}
	if err != nil {
		return entities.Car{}, err
	}

	var it carItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Car{}, err
	}
	return fromCarItem(it), nil
}

func toCarItem(c entities.Car) carItem {
	return carItem{
		ID:             c.ID,
		OwnerID:        c.OwnerID,
		Listing:        c.Listing,
		PaymentStatus:  string(c.PaymentStatus),
		IsApproved:     c.IsApproved,
		Featured:       c.Featured,
		IsActive:       c.IsActive,
		IsRented:       c.IsRented,
		ListingDraftID: c.ListingDraftID,
		CreatedAt:      formatTime(c.CreatedAt),
		UpdatedAt:      formatTime(c.UpdatedAt),
	}
}

func fromCarItem(it carItem) entities.Car {
	return entities.Car{
		ID:             it.ID,
		OwnerID:        it.OwnerID,
		Listing:        it.Listing,
		PaymentStatus:  entities.CarPaymentStatus(it.PaymentStatus),
		IsApproved:     it.IsApproved,
		Featured:       it.Featured,
		IsActive:       it.IsActive,
		IsRented:       it.IsRented,
		ListingDraftID: it.ListingDraftID,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}
