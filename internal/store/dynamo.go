package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// dynamoRecord mirrors the table schema: UserID is the partition key,
// Metadata the sort key ("user", "config#<id>", "session#<id>").
type dynamoRecord struct {
	UserID   string `dynamodbav:"UserID"`
	Metadata string `dynamodbav:"Metadata"`
	Value    []byte `dynamodbav:"Value"`
}

// Dynamo stores records in a DynamoDB table with a composite key.
type Dynamo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDynamo(ctx context.Context, tableName string) (*Dynamo, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Dynamo{
		client:    dynamodb.NewFromConfig(awsCfg),
		tableName: tableName,
	}, nil
}

// NewDynamoWithClient is used by tests and custom endpoints.
func NewDynamoWithClient(client *dynamodb.Client, tableName string) *Dynamo {
	return &Dynamo{client: client, tableName: tableName}
}

func (d *Dynamo) Get(ctx context.Context, userID, key string) ([]byte, error) {
	keyMap, err := attributevalue.MarshalMap(map[string]string{
		"UserID":   userID,
		"Metadata": key,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var record dynamoRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return record.Value, nil
}

func (d *Dynamo) Put(ctx context.Context, userID, key string, value []byte) error {
	item, err := attributevalue.MarshalMap(dynamoRecord{
		UserID:   userID,
		Metadata: key,
		Value:    value,
	})
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	if _, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

func (d *Dynamo) Delete(ctx context.Context, userID, key string) error {
	keyMap, err := attributevalue.MarshalMap(map[string]string{
		"UserID":   userID,
		"Metadata": key,
	})
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}

	out, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(d.tableName),
		Key:          keyMap,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if len(out.Attributes) == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Dynamo) QueryPrefix(ctx context.Context, userID, prefix string) ([][]byte, error) {
	keyCond := expression.Key("UserID").Equal(expression.Value(userID)).
		And(expression.Key("Metadata").BeginsWith(prefix))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build query expression: %w", err)
	}

	values := make([][]byte, 0)
	var startKey map[string]types.AttributeValue
	for {
		out, err := d.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(d.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query items: %w", err)
		}

		for _, item := range out.Items {
			var record dynamoRecord
			if err := attributevalue.UnmarshalMap(item, &record); err != nil {
				return nil, fmt.Errorf("unmarshal item: %w", err)
			}
			values = append(values, record.Value)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return values, nil
}

func (d *Dynamo) Close() error {
	return nil
}
