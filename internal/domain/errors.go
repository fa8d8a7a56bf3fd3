package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// Registration-flow sentinels. Each maps to one failure mode of the two-step
// OTP flow; handlers translate them to the responses the portal front-end expects.
var (
	ErrInvalidEmailDomain   = errors.New("invalid email domain")
	ErrInvalidOrExpiredCode = errors.New("Invalid or expired OTP")
	ErrIdentityCreation     = errors.New("failed to create user account")
	ErrProfileCreation      = errors.New("failed to create profile")
	ErrSignInLinkGeneration = errors.New("account created but failed to generate sign-in link")
)
