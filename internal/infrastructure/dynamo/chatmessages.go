package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/vitern/vitern-api/internal/domain"
)

// ChatMessageRepo provides typed DynamoDB operations for the chat_messages table.
// PK: message_id. GSI: room_id-created_at-index.
type ChatMessageRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewChatMessageRepo(client *dynamodb.Client, tableName string) *ChatMessageRepo {
	return &ChatMessageRepo{client: client, tableName: tableName}
}

func (r *ChatMessageRepo) Put(ctx context.Context, m *domain.ChatMessage) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal chat message: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// ListByRoom returns the latest messages for the room, newest first.
func (r *ChatMessageRepo) ListByRoom(ctx context.Context, roomID string, limit int32) ([]domain.ChatMessage, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("room_id-created_at-index"),
		KeyConditionExpression: aws.String("room_id = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: roomID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	})
	if err != nil {
		return nil, err
	}
	var msgs []domain.ChatMessage
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
