package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/vitern/vitern-api/internal/domain"
)

// MentorshipRepo provides typed DynamoDB operations for the mentorships table.
// PK: mentorship_id. GSIs: mentor_id-index, mentee_id-index.
type MentorshipRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMentorshipRepo(client *dynamodb.Client, tableName string) *MentorshipRepo {
	return &MentorshipRepo{client: client, tableName: tableName}
}

func (r *MentorshipRepo) Put(ctx context.Context, m *domain.Mentorship) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal mentorship: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *MentorshipRepo) Get(ctx context.Context, mentorshipID string) (*domain.Mentorship, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("mentorship_id", mentorshipID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("mentorship not found: %w", domain.ErrNotFound)
	}
	var m domain.Mentorship
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MentorshipRepo) UpdateStatus(ctx context.Context, mentorshipID, status string) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("mentorship_id", mentorshipID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *MentorshipRepo) ListByMentor(ctx context.Context, mentorID string) ([]domain.Mentorship, error) {
	return r.queryGSI(ctx, "mentor_id-index", "mentor_id", mentorID)
}

func (r *MentorshipRepo) ListByMentee(ctx context.Context, menteeID string) ([]domain.Mentorship, error) {
	return r.queryGSI(ctx, "mentee_id-index", "mentee_id", menteeID)
}

func (r *MentorshipRepo) queryGSI(ctx context.Context, index, keyAttr, value string) ([]domain.Mentorship, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(keyAttr + " = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, err
	}
	var mentorships []domain.Mentorship
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &mentorships); err != nil {
		return nil, err
	}
	return mentorships, nil
}
