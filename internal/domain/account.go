package domain

import "time"

// Account is the identity record behind a verified portal user.
//
// Accounts are provisioned exclusively by the OTP verifier. The password hash
// is random and never surfaced to anyone — sign-in happens only through
// one-time magic links, so the credential exists purely to satisfy the store.
type Account struct {
	AccountID      string     `json:"id" dynamodbav:"account_id"`
	Email          string     `json:"email" dynamodbav:"email"`
	PasswordHash   string     `json:"-" dynamodbav:"password_hash"`
	UserType       string     `json:"user_type" dynamodbav:"user_type"` // "student" | "recruiter"
	EmailConfirmed bool       `json:"email_confirmed" dynamodbav:"email_confirmed"`
	Enable         bool       `json:"enable" dynamodbav:"enable"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt      time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updated" dynamodbav:"updated_at"`
}
