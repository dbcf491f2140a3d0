package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type listingDraftItem struct {
	ID                     string                  `dynamodbav:"id"`
	OwnerID                string                  `dynamodbav:"owner_id"`
	Listing                entities.ListingDetails `dynamodbav:"listing"`
	RequestedAmountInPaise int64                   `dynamodbav:"requested_amount_in_paise"`
	FeatureAddon           bool                    `dynamodbav:"feature_addon"`
	IsFirstListing         bool                    `dynamodbav:"is_first_listing"`
	PaymentRef             string                  `dynamodbav:"payment_ref"`
	Status                 string                  `dynamodbav:"status"`
	PublishedListingID     string                  `dynamodbav:"published_listing_id,omitempty"`
	PublishedAt            string                  `dynamodbav:"published_at,omitempty"`
	CreatedAt              string                  `dynamodbav:"created_at"`
	UpdatedAt              string                  `dynamodbav:"updated_at"`
}

// ListingDraftDynamoRepository persists ListingDraft entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: owner_id-index (PK: owner_id), status-index (PK: status)
//
// Publish writes to the cars table too, inside one transaction.

type ListingDraftDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	carsTable string
	now       func() time.Time
}

var _ interfaces.IListingDraftRepository = (*ListingDraftDynamoRepository)(nil)

func NewListingDraftDynamoRepository(ddb DynamoAPI, tableName, carsTable string) *ListingDraftDynamoRepository {
	return &ListingDraftDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
		carsTable: carsTable,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *ListingDraftDynamoRepository) Create(ctx context.Context, d entities.ListingDraft) (entities.ListingDraft, error) {
	av, err := attributevalue.MarshalMap(toListingDraftItem(d))
	if err != nil {
		return entities.ListingDraft{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return entities.ListingDraft{}, err
	}
	return d, nil
}

func (r *ListingDraftDynamoRepository) GetByID(ctx context.Context, id string) (entities.ListingDraft, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": strAV(id)},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ListingDraft{}, err
	}
	if len(out.Item) == 0 {
		return entities.ListingDraft{}, nil
	}

	var it listingDraftItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ListingDraft{}, err
	}
	return fromListingDraftItem(it), nil
}

func (r *ListingDraftDynamoRepository) ListByOwner(ctx context.Context, ownerID string) ([]entities.ListingDraft, error) {
	return r.queryIndex(ctx, indexOwnerID, "owner_id = :v", ownerID)
}

func (r *ListingDraftDynamoRepository) ListByStatus(ctx context.Context, status entities.ListingDraftStatus) ([]entities.ListingDraft, error) {
	return r.queryIndex(ctx, indexStatus, "#status = :v", string(status))
}

func (r *ListingDraftDynamoRepository) queryIndex(ctx context.Context, index, keyCond, value string) ([]entities.ListingDraft, error) {
	in := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String(keyCond),
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": strAV(value)},
	}
	if strings.Contains(keyCond, "#status") {
		in.ExpressionAttributeNames = map[string]string{"#status": "status"}
	}

	var drafts []entities.ListingDraft
	for {
		out, err := r.ddb.Query(ctx, in)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it listingDraftItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			drafts = append(drafts, fromListingDraftItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return drafts, nil
}

func (r *ListingDraftDynamoRepository) TransitionStatus(ctx context.Context, id string, from []entities.ListingDraftStatus, to entities.ListingDraftStatus) (bool, error) {
	if len(from) == 0 {
		return false, errors.New("transition requires at least one source status")
	}

	values := map[string]types.AttributeValue{
		":to":  strAV(string(to)),
		":now": strAV(formatTime(r.now())),
	}
	placeholders := make([]string, 0, len(from))
	for i, f := range from {
		ph := fmt.Sprintf(":f%d", i)
		placeholders = append(placeholders, ph)
		values[ph] = strAV(string(f))
	}

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       map[string]types.AttributeValue{"id": strAV(id)},
		UpdateExpression:          aws.String("SET #status = :to, updated_at = :now"),
		ConditionExpression:       aws.String("#status IN (" + strings.Join(placeholders, ", ") + ")"),
		ExpressionAttributeNames:  map[string]string{"#status": "status"},
		ExpressionAttributeValues: values,
	})
	if isConditionalCheckFailed(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Publish inserts the car and stamps the draft in one TransactWriteItems call.
// The draft update is conditioned on no published listing id being present.
func (r *ListingDraftDynamoRepository) Publish(ctx context.Context, draftID string, car entities.Car, publishedAt time.Time) (entities.Car, error) {
	carAV, err := attributevalue.MarshalMap(toCarItem(car))
	if err != nil {
		return entities.Car{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.carsTable),
				Item:                     carAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Update: &types.Update{
				TableName:           aws.String(r.tableName),
				Key:                 map[string]types.AttributeValue{"id": strAV(draftID)},
				UpdateExpression:    aws.String("SET #status = :published, published_listing_id = :car, published_at = :at, updated_at = :at"),
				ConditionExpression: aws.String("attribute_exists(id) AND attribute_not_exists(published_listing_id)"),
				ExpressionAttributeNames: map[string]string{
					"#status": "status",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":published": strAV(string(entities.ListingDraftStatusPublished)),
					":car":       strAV(car.ID),
					":at":        strAV(formatTime(publishedAt)),
				},
			}},
		},
	})
	if transactionConditionFailed(err, 1) {
		return entities.Car{}, interfaces.ErrDraftAlreadyPublished
	}
	if err != nil {
		return entities.Car{}, err
	}
	return car, nil
}

func toListingDraftItem(d entities.ListingDraft) listingDraftItem {
	return listingDraftItem{
		ID:                     d.ID,
		OwnerID:                d.OwnerID,
		Listing:                d.Listing,
		RequestedAmountInPaise: d.RequestedAmountInPaise,
		FeatureAddon:           d.FeatureAddon,
		IsFirstListing:         d.IsFirstListing,
		PaymentRef:             d.PaymentRef,
		Status:                 string(d.Status),
		PublishedListingID:     d.PublishedListingID,
		PublishedAt:            formatTimePtr(d.PublishedAt),
		CreatedAt:              formatTime(d.CreatedAt),
		UpdatedAt:              formatTime(d.UpdatedAt),
	}
}

func fromListingDraftItem(it listingDraftItem) entities.ListingDraft {
	return entities.ListingDraft{
		ID:                     it.ID,
		OwnerID:                it.OwnerID,
		Listing:                it.Listing,
		RequestedAmountInPaise: it.RequestedAmountInPaise,
		FeatureAddon:           it.FeatureAddon,
		IsFirstListing:         it.IsFirstListing,
		PaymentRef:             it.PaymentRef,
		Status:                 entities.ListingDraftStatus(it.Status),
		PublishedListingID:     it.PublishedListingID,
		PublishedAt:            parseTimePtr(it.PublishedAt),
		CreatedAt:              parseTime(it.CreatedAt),
		UpdatedAt:              parseTime(it.UpdatedAt),
	}
}
