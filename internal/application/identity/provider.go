package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/vitern/vitern-api/internal/domain"
	"github.com/vitern/vitern-api/internal/pkg/id"
	pkgtoken "github.com/vitern/vitern-api/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// AccountStore persists accounts.
type AccountStore interface {
	Put(ctx context.Context, a *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Delete(ctx context.Context, accountID string) error
}

// SignInTokenStore persists one-time sign-in tokens.
type SignInTokenStore interface {
	Put(ctx context.Context, t *domain.SignInToken) error
}

// Provider implements the registration identity seam on top of the account
// and sign-in token tables.
type Provider struct {
	accounts      AccountStore
	signInTokens  SignInTokenStore
	linkBaseURL   string
	tokenLifetime time.Duration
}

func NewProvider(accounts AccountStore, signInTokens SignInTokenStore, linkBaseURL string, tokenLifetime time.Duration) *Provider {
	return &Provider{
		accounts:      accounts,
		signInTokens:  signInTokens,
		linkBaseURL:   linkBaseURL,
		tokenLifetime: tokenLifetime,
	}
}

// CreateAccount provisions an email-confirmed account for a verified signup.
// The password is random and never surfaced; accounts created this way are
// reachable only through sign-in links.
func (p *Provider) CreateAccount(ctx context.Context, email, userType string) (*domain.Account, error) {
	if existing, err := p.accounts.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}

	rawPassword, err := pkgtoken.NewOpaque()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		AccountID:      id.New(),
		Email:          email,
		PasswordHash:   string(hash),
		UserType:       userType,
		EmailConfirmed: true,
		Enable:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := p.accounts.Put(ctx, account); err != nil {
		return nil, fmt.Errorf("store account: %w", err)
	}
	return account, nil
}

// DeleteAccount removes a just-created account. Used only as registration
// rollback, so this is a hard delete rather than a disable.
func (p *Provider) DeleteAccount(ctx context.Context, accountID string) error {
	return p.accounts.Delete(ctx, accountID)
}

// GenerateSignInLink mints a one-time opaque token and returns the front-end
// callback URL carrying it.
func (p *Provider) GenerateSignInLink(ctx context.Context, account *domain.Account) (string, error) {
	tok, err := pkgtoken.NewOpaque()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	record := &domain.SignInToken{
		Token:     tok,
		AccountID: account.AccountID,
		Email:     account.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(p.tokenLifetime).Unix(),
	}
	if err := p.signInTokens.Put(ctx, record); err != nil {
		return "", fmt.Errorf("store sign-in token: %w", err)
	}

	return fmt.Sprintf("%s?token=%s", p.linkBaseURL, tok), nil
}
