package session

import (
	"context"
	"fmt"
	"time"

	"github.com/vitern/vitern-api/internal/domain"
	"github.com/vitern/vitern-api/internal/pkg/id"
	pkgtoken "github.com/vitern/vitern-api/internal/pkg/token"
)

type ExchangeRequest struct {
	Token string `json:"token" validate:"required"`
}

type ExchangeResult struct {
	Bearer       string
	RefreshToken string
	Session      *domain.Session
}

type SessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error)
	RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error
	Update(ctx context.Context, sessionID string, updates map[string]interface{}) error
}

type AccountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
}

// SignInTokenStore claims one-time tokens. Claim must atomically remove the
// token so a link can never be exchanged twice.
type SignInTokenStore interface {
	Claim(ctx context.Context, token string) (*domain.SignInToken, error)
}

type TokenSigner interface {
	Sign(accountID, userType, sessionID string) (string, error)
}

type Service interface {
	ExchangeMagicLink(ctx context.Context, req ExchangeRequest) (*ExchangeResult, error)
	Refresh(ctx context.Context, refreshToken string) (bearer, newRefreshToken string, err error)
	Logout(ctx context.Context, sessionID string) error
	GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error)
}

type ServiceDeps struct {
	SessionRepo     SessionStore
	AccountRepo     AccountStore
	SignInTokenRepo SignInTokenStore
	Signer          TokenSigner
	RefreshTokenDur time.Duration
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	return &service{deps: deps}
}

// ExchangeMagicLink trades a sign-in link token for a session. The claim
// deletes the token, so retries and replays both miss.
func (s *service) ExchangeMagicLink(ctx context.Context, req ExchangeRequest) (*ExchangeResult, error) {
	tok, err := s.deps.SignInTokenRepo.Claim(ctx, req.Token)
	if err != nil {
		return nil, fmt.Errorf("invalid sign-in token: %w", domain.ErrUnauthorized)
	}
	if tok.ExpiresAt <= time.Now().Unix() {
		return nil, fmt.Errorf("sign-in token expired: %w", domain.ErrUnauthorized)
	}

	account, err := s.deps.AccountRepo.Get(ctx, tok.AccountID)
	if err != nil {
		return nil, fmt.Errorf("account lookup: %w", domain.ErrUnauthorized)
	}
	if !account.Enable {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}

	refreshToken, err := pkgtoken.NewOpaque()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID:        id.New(),
		AccountID:        account.AccountID,
		Enable:           true,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(s.deps.RefreshTokenDur).Unix(),
		CreatedAt:        now,
		UpdatedAt:        now,
		Account:          account,
	}
	if err := s.deps.SessionRepo.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	bearer, err := s.deps.Signer.Sign(account.AccountID, account.UserType, sess.SessionID)
	if err != nil {
		return nil, fmt.Errorf("sign bearer: %w", err)
	}

	return &ExchangeResult{Bearer: bearer, RefreshToken: refreshToken, Session: sess}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	sess, err := s.deps.SessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("unknown refresh token: %w", domain.ErrUnauthorized)
	}
	if !sess.Enable {
		return "", "", fmt.Errorf("session revoked: %w", domain.ErrUnauthorized)
	}
	if sess.RefreshExpiresAt <= time.Now().Unix() {
		return "", "", fmt.Errorf("refresh token expired: %w", domain.ErrUnauthorized)
	}

	account, err := s.deps.AccountRepo.Get(ctx, sess.AccountID)
	if err != nil {
		return "", "", fmt.Errorf("account lookup: %w", domain.ErrUnauthorized)
	}
	if !account.Enable {
		return "", "", fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}

	newToken, err := pkgtoken.NewOpaque()
	if err != nil {
		return "", "", err
	}
	newExpiry := time.Now().UTC().Add(s.deps.RefreshTokenDur).Unix()
	if err := s.deps.SessionRepo.RotateRefreshToken(ctx, sess.SessionID, newToken, newExpiry); err != nil {
		return "", "", fmt.Errorf("rotate refresh token: %w", err)
	}

	bearer, err := s.deps.Signer.Sign(account.AccountID, account.UserType, sess.SessionID)
	if err != nil {
		return "", "", fmt.Errorf("sign bearer: %w", err)
	}
	return bearer, newToken, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.deps.SessionRepo.Update(ctx, sessionID, map[string]interface{}{
		"enable": false,
	})
}

func (s *service) GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.deps.SessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Enable {
		return nil, fmt.Errorf("session revoked: %w", domain.ErrUnauthorized)
	}
	if account, err := s.deps.AccountRepo.Get(ctx, sess.AccountID); err == nil {
		sess.Account = account
	}
	return sess, nil
}
