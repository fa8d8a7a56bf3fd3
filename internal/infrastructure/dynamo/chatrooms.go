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

// ChatRoomRepo provides typed DynamoDB operations for the chat_rooms table.
// PK: room_id.
type ChatRoomRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewChatRoomRepo(client *dynamodb.Client, tableName string) *ChatRoomRepo {
	return &ChatRoomRepo{client: client, tableName: tableName}
}

func (r *ChatRoomRepo) Put(ctx context.Context, room *domain.ChatRoom) error {
	item, err := attributevalue.MarshalMap(room)
	if err != nil {
		return fmt.Errorf("marshal chat room: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ChatRoomRepo) Get(ctx context.Context, roomID string) (*domain.ChatRoom, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("room_id", roomID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("chat room not found: %w", domain.ErrNotFound)
	}
	var room domain.ChatRoom
	if err := attributevalue.UnmarshalMap(out.Item, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// ListActive scans for rooms with is_active=true. Room counts stay small
// enough that a filtered scan is acceptable here.
func (r *ChatRoomRepo) ListActive(ctx context.Context) ([]domain.ChatRoom, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("is_active = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		return nil, err
	}
	var rooms []domain.ChatRoom
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}
