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

// ApplicationRepo provides typed DynamoDB operations for the
// internship_applications table.
// PK: application_id. GSIs: internship_id-index, student_id-index.
type ApplicationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewApplicationRepo(client *dynamodb.Client, tableName string) *ApplicationRepo {
	return &ApplicationRepo{client: client, tableName: tableName}
}

func (r *ApplicationRepo) Put(ctx context.Context, a *domain.InternshipApplication) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal application: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ApplicationRepo) Get(ctx context.Context, applicationID string) (*domain.InternshipApplication, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("application_id", applicationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("application not found: %w", domain.ErrNotFound)
	}
	var a domain.InternshipApplication
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, applicationID, status string) error {
	ue, err := buildUpdateExpr(map[string]interface{}{"status": status})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("application_id", applicationID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *ApplicationRepo) ListByInternship(ctx context.Context, internshipID string) ([]domain.InternshipApplication, error) {
	return r.queryGSI(ctx, "internship_id-index", "internship_id", internshipID, nil)
}

func (r *ApplicationRepo) ListByStudent(ctx context.Context, studentID string) ([]domain.InternshipApplication, error) {
	return r.queryGSI(ctx, "student_id-index", "student_id", studentID, nil)
}

// GetByInternshipAndStudent returns the student's existing application for the
// internship, or domain.ErrNotFound. Used for the duplicate-application check.
func (r *ApplicationRepo) GetByInternshipAndStudent(ctx context.Context, internshipID, studentID string) (*domain.InternshipApplication, error) {
	filter := map[string]types.AttributeValue{
		":f": &types.AttributeValueMemberS{Value: internshipID},
	}
	apps, err := r.queryGSI(ctx, "student_id-index", "student_id", studentID, filter)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, fmt.Errorf("application not found: %w", domain.ErrNotFound)
	}
	return &apps[0], nil
}

func (r *ApplicationRepo) queryGSI(ctx context.Context, index, keyAttr, value string, internshipFilter map[string]types.AttributeValue) ([]domain.InternshipApplication, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(keyAttr + " = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	}
	if internshipFilter != nil {
		input.FilterExpression = aws.String("internship_id = :f")
		input.ExpressionAttributeValues[":f"] = internshipFilter[":f"]
	}
	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, err
	}
	var apps []domain.InternshipApplication
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}
