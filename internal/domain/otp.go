package domain

import "time"

// UserType discriminates the two registration roles.
const (
	UserTypeStudent   = "student"
	UserTypeRecruiter = "recruiter"
)

// ValidUserType reports whether t is one of the known registration roles.
func ValidUserType(t string) bool {
	return t == UserTypeStudent || t == UserTypeRecruiter
}

// OTPVerification is one issued email verification code.
// PK: otp_id. GSI: email-index (email).
//
// Several unconsumed codes may coexist for the same email; verification matches
// on the literal (email, code) pair with used=false and expires_at in the future.
// ExpiresAt doubles as the DynamoDB TTL attribute so stale rows are reclaimed,
// but the authoritative expiry check happens at verification time.
type OTPVerification struct {
	OTPID     string    `json:"id" dynamodbav:"otp_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Code      string    `json:"-" dynamodbav:"otp_code"`
	Used      bool      `json:"used" dynamodbav:"used"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// Expired reports whether the code's lifetime has passed at the given instant.
func (v *OTPVerification) Expired(now time.Time) bool {
	return v.ExpiresAt <= now.Unix()
}
