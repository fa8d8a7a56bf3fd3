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

// ResumeRepo provides typed DynamoDB operations for the resumes table.
// PK: resume_id. GSI: student_id-index.
type ResumeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewResumeRepo(client *dynamodb.Client, tableName string) *ResumeRepo {
	return &ResumeRepo{client: client, tableName: tableName}
}

func (r *ResumeRepo) Put(ctx context.Context, res *domain.Resume) error {
	item, err := attributevalue.MarshalMap(res)
	if err != nil {
		return fmt.Errorf("marshal resume: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ResumeRepo) Get(ctx context.Context, resumeID string) (*domain.Resume, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("resume_id", resumeID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("resume not found: %w", domain.ErrNotFound)
	}
	var res domain.Resume
	if err := attributevalue.UnmarshalMap(out.Item, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResumeRepo) ListByStudent(ctx context.Context, studentID string) ([]domain.Resume, error) {
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
	var resumes []domain.Resume
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

func (r *ResumeRepo) Delete(ctx context.Context, resumeID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("resume_id", resumeID),
	})
	return err
}
