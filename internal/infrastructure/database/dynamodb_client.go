package database

import (
	"context"
	"log"
	"os"

	"car_marketplace/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ConnectDynamoDB creates a DynamoDB client from the store config.
//
// Credentials come from the default chain; when DYNAMODB_ENDPOINT points at
// DynamoDB Local and no AWS keys are set, static "local" keys are used since
// the SDK refuses to sign without any.
func ConnectDynamoDB(ctx context.Context, cfg config.StoreConfig) (*dynamodb.Client, error) {
	awsCfg, err := NewDynamoDBConfig(ctx, cfg)
	if err != nil {
		log.Printf("[database][dynamodb] failed to create config err=%v", err)
		return nil, err
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
	log.Printf("[database][dynamodb] client ready region=%s endpoint=%q", cfg.AWSRegion, cfg.DynamoDBEndpoint)
	return client, nil
}

func NewDynamoDBConfig(ctx context.Context, cfg config.StoreConfig) (aws.Config, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}

	if cfg.DynamoDBEndpoint != "" && os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	return awsconfig.LoadDefaultConfig(ctx, loadOpts...)
}
