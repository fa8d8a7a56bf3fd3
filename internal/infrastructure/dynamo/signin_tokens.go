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

// SignInTokenRepo provides typed DynamoDB operations for the signin_tokens table.
// PK: token.
type SignInTokenRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSignInTokenRepo(client *dynamodb.Client, tableName string) *SignInTokenRepo {
	return &SignInTokenRepo{client: client, tableName: tableName}
}

func (r *SignInTokenRepo) Put(ctx context.Context, t *domain.SignInToken) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal sign-in token: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Claim deletes the token row and returns what was stored. DeleteItem with
// ReturnValues=ALL_OLD makes the claim atomic: a token can be exchanged for a
// session exactly once, no matter how many requests race on it.
func (r *SignInTokenRepo) Claim(ctx context.Context, token string) (*domain.SignInToken, error) {
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.tableName),
		Key:          strKey("token", token),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, err
	}
	if out.Attributes == nil {
		return nil, fmt.Errorf("sign-in token not found: %w", domain.ErrNotFound)
	}
	var t domain.SignInToken
	if err := attributevalue.UnmarshalMap(out.Attributes, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
