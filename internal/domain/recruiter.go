package domain

import "time"

// Recruiter is the recruiter profile variant.
// PK: recruiter_id. GSI: account_id-index.
type Recruiter struct {
	RecruiterID string    `json:"id" dynamodbav:"recruiter_id"`
	AccountID   string    `json:"account_id" dynamodbav:"account_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Email       string    `json:"email" dynamodbav:"email"`
	Company     string    `json:"company" dynamodbav:"company"`
	Position    string    `json:"position" dynamodbav:"position"`
	Verified    bool      `json:"is_verified" dynamodbav:"is_verified"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}
