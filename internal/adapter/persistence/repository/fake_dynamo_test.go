package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo records inputs and replays canned outputs.
type fakeDynamo struct {
	puts     []*dynamodb.PutItemInput
	gets     []*dynamodb.GetItemInput
	queries  []*dynamodb.QueryInput
	updates  []*dynamodb.UpdateItemInput
	transact []*dynamodb.TransactWriteItemsInput

	getItems    []map[string]types.AttributeValue
	queryPages  []*dynamodb.QueryOutput
	updateOut   *dynamodb.UpdateItemOutput
	putErr      error
	updateErr   error
	transactErr error
}

var _ DynamoAPI = (*fakeDynamo)(nil)

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.gets = append(f.gets, in)
	if len(f.getItems) == 0 {
		return &dynamodb.GetItemOutput{}, nil
	}
	item := f.getItems[0]
	f.getItems = f.getItems[1:]
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	cp := *in
	f.queries = append(f.queries, &cp)
	if len(f.queryPages) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	out := f.queryPages[0]
	f.queryPages = f.queryPages[1:]
	return out, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, in)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOut != nil {
		return f.updateOut, nil
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transact = append(f.transact, in)
	if f.transactErr != nil {
		return nil, f.transactErr
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func cancelledAt(idx, size int) error {
	reasons := make([]types.CancellationReason, size)
	for i := range reasons {
		reasons[i].Code = aws.String("None")
	}
	reasons[idx].Code = aws.String("ConditionalCheckFailed")
	return &types.TransactionCanceledException{CancellationReasons: reasons}
}
