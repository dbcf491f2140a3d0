package database

import (
	"context"
	"errors"
	"log"

	"car_marketplace/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Index names shared with the repositories.
const (
	IndexOrderID = "order_id-index"
	IndexOwnerID = "owner_id-index"
	IndexStatus  = "status-index"
)

type tableSpec struct {
	name string
	hash string
	gsis map[string]string // index name -> hash key
}

// EnsureTables creates any missing table with its GSIs. Meant for DynamoDB
// Local; production tables are provisioned outside the service.
func EnsureTables(ctx context.Context, ddb *dynamodb.Client, cfg config.StoreConfig) error {
	specs := []tableSpec{
		{name: cfg.PaymentsTable, hash: "id", gsis: map[string]string{IndexOrderID: "order_id"}},
		{name: cfg.IdempotencyTable, hash: "idempotency_key"},
		{name: cfg.ListingDraftsTable, hash: "id", gsis: map[string]string{IndexOwnerID: "owner_id", IndexStatus: "status"}},
		{name: cfg.CarsTable, hash: "id", gsis: map[string]string{IndexOwnerID: "owner_id"}},
		{name: cfg.UsersTable, hash: "id"},
	}

	for _, s := range specs {
		if err := ensureTable(ctx, ddb, s); err != nil {
			return err
		}
	}
	return nil
}

func ensureTable(ctx context.Context, ddb *dynamodb.Client, s tableSpec) error {
	_, err := ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.name)})
	if err == nil {
		return nil
	}
	var nf *types.ResourceNotFoundException
	if !errors.As(err, &nf) {
		return err
	}

	attrs := map[string]bool{s.hash: true}
	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(s.name),
		BillingMode: types.BillingModePayPerRequest,
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(s.hash), KeyType: types.KeyTypeHash},
		},
	}
	for index, key := range s.gsis {
		attrs[key] = true
		in.GlobalSecondaryIndexes = append(in.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
			IndexName:  aws.String(index),
			KeySchema:  []types.KeySchemaElement{{AttributeName: aws.String(key), KeyType: types.KeyTypeHash}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	for name := range attrs {
		in.AttributeDefinitions = append(in.AttributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(name),
			AttributeType: types.ScalarAttributeTypeS,
		})
	}

	if _, err := ddb.CreateTable(ctx, in); err != nil {
		return err
	}
	log.Printf("[database][dynamodb] created table %s", s.name)
	return nil
}
