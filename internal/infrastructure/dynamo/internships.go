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

// InternshipRepo provides typed DynamoDB operations for the internships table.
// PK: internship_id. GSIs: recruiter_id-index, status-index.
type InternshipRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewInternshipRepo(client *dynamodb.Client, tableName string) *InternshipRepo {
	return &InternshipRepo{client: client, tableName: tableName}
}

func (r *InternshipRepo) Put(ctx context.Context, i *domain.Internship) error {
	item, err := attributevalue.MarshalMap(i)
	if err != nil {
		return fmt.Errorf("marshal internship: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *InternshipRepo) Get(ctx context.Context, internshipID string) (*domain.Internship, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("internship_id", internshipID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("internship not found: %w", domain.ErrNotFound)
	}
	var i domain.Internship
	if err := attributevalue.UnmarshalMap(out.Item, &i); err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InternshipRepo) Update(ctx context.Context, internshipID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("internship_id", internshipID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// ListByStatus queries the status-index; students browse with status="open".
func (r *InternshipRepo) ListByStatus(ctx context.Context, status string) ([]domain.Internship, error) {
	return r.queryGSI(ctx, "status-index", "#s = :v", map[string]string{"#s": "status"}, status)
}

func (r *InternshipRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.Internship, error) {
	return r.queryGSI(ctx, "recruiter_id-index", "recruiter_id = :v", nil, recruiterID)
}

func (r *InternshipRepo) queryGSI(ctx context.Context, index, keyCond string, names map[string]string, value string) ([]domain.Internship, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String(index),
		KeyConditionExpression:   aws.String(keyCond),
		ExpressionAttributeNames: names,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, err
	}
	var internships []domain.Internship
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &internships); err != nil {
		return nil, err
	}
	return internships, nil
}
