package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"car_marketplace/internal/domain/entities"
	"car_marketplace/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type paymentItem struct {
	ID                     string                 `dynamodbav:"id"`
	PayerID                string                 `dynamodbav:"payer_id"`
	Type                   string                 `dynamodbav:"type"`
	RequestedAmountInPaise int64                  `dynamodbav:"requested_amount_in_paise"`
	SettledAmountInPaise   *int64                 `dynamodbav:"settled_amount_in_paise,omitempty"`
	GatewayFeesInPaise     *int64                 `dynamodbav:"gateway_fees_in_paise,omitempty"`
	Currency               string                 `dynamodbav:"currency"`
	Status                 string                 `dynamodbav:"status"`
	Provider               string                 `dynamodbav:"provider"`
	ProviderRef            string                 `dynamodbav:"provider_ref,omitempty"`
	OrderID                string                 `dynamodbav:"order_id"`
	IdempotencyKey         string                 `dynamodbav:"idempotency_key,omitempty"`
	ListingDraftID         string                 `dynamodbav:"listing_draft_id,omitempty"`
	CarID                  string                 `dynamodbav:"car_id,omitempty"`
	Plan                   string                 `dynamodbav:"plan,omitempty"`
	CheckoutURL            string                 `dynamodbav:"checkout_url,omitempty"`
	WebhookReceived        bool                   `dynamodbav:"webhook_received"`
	FailureReason          string                 `dynamodbav:"failure_reason,omitempty"`
	Metadata               map[string]interface{} `dynamodbav:"metadata,omitempty"`
	LastWebhook            map[string]interface{} `dynamodbav:"last_webhook,omitempty"`
	PaidAt                 string                 `dynamodbav:"paid_at,omitempty"`
	FailedAt               string                 `dynamodbav:"failed_at,omitempty"`
	CreatedAt              string                 `dynamodbav:"created_at"`
	UpdatedAt              string                 `dynamodbav:"updated_at"`
}

type idempotencyItem struct {
	Key       string `dynamodbav:"idempotency_key"`
	PaymentID string `dynamodbav:"payment_id"`
	CreatedAt string `dynamodbav:"created_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - payments PK: id (string), GSI: order_id-index (PK: order_id)
//   - idempotency PK: idempotency_key (string)
//
// The idempotency table is written in the same transaction as the payment,
// which is what makes the key unique; GSIs cannot enforce uniqueness.

type PaymentDynamoRepository struct {
	ddb              DynamoAPI
	tableName        string
	idempotencyTable string
	now              func() time.Time
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI, tableName, idempotencyTable string) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:              ddb,
		tableName:        tableName,
		idempotencyTable: idempotencyTable,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}

	put := &types.Put{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}

	if p.IdempotencyKey == "" {
		_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                put.TableName,
			Item:                     put.Item,
			ConditionExpression:      put.ConditionExpression,
			ExpressionAttributeNames: put.ExpressionAttributeNames,
		})
		if err != nil {
			return entities.Payment{}, err
		}
		return p, nil
	}

	keyAV, err := attributevalue.MarshalMap(idempotencyItem{Key: p.IdempotencyKey, PaymentID: p.ID, CreatedAt: formatTime(p.CreatedAt)})
	if err != nil {
		return entities.Payment{}, err
	}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: put},
			{Put: &types.Put{
				TableName:                aws.String(r.idempotencyTable),
				Item:                     keyAV,
				ConditionExpression:      aws.String("attribute_not_exists(#k)"),
				ExpressionAttributeNames: map[string]string{"#k": "idempotency_key"},
			}},
		},
	})
	if transactionConditionFailed(err, 1) {
		return entities.Payment{}, interfaces.ErrDuplicateIdempotencyKey
	}
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": strAV(id)},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) GetByOrderID(ctx context.Context, orderID string) (entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexOrderID),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": strAV(orderID),
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Items) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Payment{}, err
	}
	// GSI reads are eventually consistent; re-read the base item.
	return r.GetByID(ctx, it.ID)
}

func (r *PaymentDynamoRepository) GetByIdempotencyKey(ctx context.Context, key string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.idempotencyTable),
		Key:            map[string]types.AttributeValue{"idempotency_key": strAV(key)},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it idempotencyItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return r.GetByID(ctx, it.PaymentID)
}

func (r *PaymentDynamoRepository) SetCheckoutURL(ctx context.Context, id, checkoutURL, providerRef string) error {
	expr := "SET checkout_url = :url, updated_at = :now"
	values := map[string]types.AttributeValue{
		":url": strAV(checkoutURL),
		":now": strAV(formatTime(r.now())),
	}
	if providerRef != "" {
		expr += ", provider_ref = :ref"
		values[":ref"] = strAV(providerRef)
	}

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       map[string]types.AttributeValue{"id": strAV(id)},
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *PaymentDynamoRepository) MarkSucceeded(ctx context.Context, id string, s entities.Settlement) (bool, error) {
	expr := "SET #status = :succeeded, settled_amount_in_paise = :amount, paid_at = :paid, updated_at = :now"
	values := map[string]types.AttributeValue{
		":succeeded": strAV(string(entities.PaymentStatusSucceeded)),
		":pending":   strAV(string(entities.PaymentStatusPending)),
		":amount":    &types.AttributeValueMemberN{Value: strconv.FormatInt(s.SettledAmountInPaise, 10)},
		":paid":      strAV(formatTime(s.PaidAt)),
		":now":       strAV(formatTime(r.now())),
	}
	if s.GatewayFeesInPaise != nil {
		expr += ", gateway_fees_in_paise = :fees"
		values[":fees"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(*s.GatewayFeesInPaise, 10)}
	}
	if s.ProviderRef != "" {
		expr += ", provider_ref = :ref"
		values[":ref"] = strAV(s.ProviderRef)
	}
	return r.conditionalUpdate(ctx, id, expr, values)
}

func (r *PaymentDynamoRepository) MarkFailed(ctx context.Context, id, reason string, at time.Time) (bool, error) {
	return r.conditionalUpdate(ctx, id,
		"SET #status = :failed, failure_reason = :reason, failed_at = :at, updated_at = :now",
		map[string]types.AttributeValue{
			":failed":  strAV(string(entities.PaymentStatusFailed)),
			":pending": strAV(string(entities.PaymentStatusPending)),
			":reason":  strAV(reason),
			":at":      strAV(formatTime(at)),
			":now":     strAV(formatTime(r.now())),
		})
}

// conditionalUpdate applies expr only while the payment is PENDING.
func (r *PaymentDynamoRepository) conditionalUpdate(ctx context.Context, id, expr string, values map[string]types.AttributeValue) (bool, error) {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       map[string]types.AttributeValue{"id": strAV(id)},
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("#status = :pending"),
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

func (r *PaymentDynamoRepository) RecordWebhook(ctx context.Context, id string, payload map[string]any) error {
	values := map[string]types.AttributeValue{
		":true": &types.AttributeValueMemberBOOL{Value: true},
		":now":  strAV(formatTime(r.now())),
	}
	expr := "SET webhook_received = :true, updated_at = :now"
	if payload != nil {
		av, err := attributevalue.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal webhook payload: %w", err)
		}
		values[":payload"] = av
		expr += ", last_webhook = :payload"
	}

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       map[string]types.AttributeValue{"id": strAV(id)},
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: values,
	})
	return err
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
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
		PaidAt:                 formatTimePtr(p.PaidAt),
		FailedAt:               formatTimePtr(p.FailedAt),
		CreatedAt:              formatTime(p.CreatedAt),
		UpdatedAt:              formatTime(p.UpdatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	md := it.Metadata
	if it.LastWebhook != nil {
		md = make(map[string]any, len(it.Metadata)+1)
		for k, v := range it.Metadata {
			md[k] = v
		}
		md["last_webhook"] = it.LastWebhook
	}
	return entities.Payment{
		ID:                     it.ID,
		PayerID:                it.PayerID,
		Type:                   entities.PaymentType(it.Type),
		RequestedAmountInPaise: it.RequestedAmountInPaise,
		SettledAmountInPaise:   it.SettledAmountInPaise,
		GatewayFeesInPaise:     it.GatewayFeesInPaise,
		Currency:               it.Currency,
		Status:                 entities.PaymentStatus(it.Status),
		Provider:               it.Provider,
		ProviderRef:            it.ProviderRef,
		OrderID:                it.OrderID,
		IdempotencyKey:         it.IdempotencyKey,
		ListingDraftID:         it.ListingDraftID,
		CarID:                  it.CarID,
		Plan:                   entities.MembershipPlan(it.Plan),
		CheckoutURL:            it.CheckoutURL,
		WebhookReceived:        it.WebhookReceived,
		FailureReason:          it.FailureReason,
		Metadata:               md,
		PaidAt:                 parseTimePtr(it.PaidAt),
		FailedAt:               parseTimePtr(it.FailedAt),
		CreatedAt:              parseTime(it.CreatedAt),
		UpdatedAt:              parseTime(it.UpdatedAt),
	}
}
