package store

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamoTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDbTokenStore backs the token cache with a table keyed by user_id,
// for deployments where records should survive process restarts.
type DynamoDbTokenStore struct {
	Client    *dynamodb.Client
	TableName string
}

func NewDynamoDbTokenStore(dbClient *dynamodb.Client, tableName string) *DynamoDbTokenStore {
	return &DynamoDbTokenStore{
		Client:    dbClient,
		TableName: tableName,
	}
}

func (s *DynamoDbTokenStore) Put(ctx context.Context, record TokenRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return err
	}

	// Unconditional put: last write wins per user id.
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.TableName),
		Item:      item,
	})
	return err
}

func (s *DynamoDbTokenStore) Get(ctx context.Context, userID string) (*TokenRecord, error) {
	res, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]dynamoTypes.AttributeValue{
			"user_id": &dynamoTypes.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	if res.Item == nil {
		return nil, ErrTokenNotFound
	}

	var record TokenRecord
	if err := attributevalue.UnmarshalMap(res.Item, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *DynamoDbTokenStore) IsReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	_, err := s.Client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.TableName),
	})
	return err
}

func (s *DynamoDbTokenStore) Name() string {
	return "TokenStore[dynamo]"
}
