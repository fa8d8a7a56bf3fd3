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

// BadgeRepo provides typed DynamoDB operations for the badges table.
// PK: badge_id. GSI: student_id-index.
type BadgeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewBadgeRepo(client *dynamodb.Client, tableName string) *BadgeRepo {
	return &BadgeRepo{client: client, tableName: tableName}
}

func (r *BadgeRepo) Put(ctx context.Context, b *domain.Badge) error {
	item, err := attributevalue.MarshalMap(b)
	if err != nil {
		return fmt.Errorf("marshal badge: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *BadgeRepo) ListByStudent(ctx context.Context, studentID string) ([]domain.Badge, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("student_id-index"),
		KeyConditionExpression: aws.String("student_id = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: studentID},
		},
	})
	if err != nil {
		return nil, err
	}
	var badges []domain.Badge
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

// CountByStudent returns the badge totals for every student in one pass,
// feeding the leaderboard ranking.
func (r *BadgeRepo) CountByStudent(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(r.tableName),
			ProjectionExpression: aws.String("student_id"),
			ExclusiveStartKey:    startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Badge
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		for _, b := range page {
			counts[b.StudentID]++
		}
		if out.LastEvaluatedKey == nil {
			return counts, nil
		}
		startKey = out.LastEvaluatedKey
	}
}
