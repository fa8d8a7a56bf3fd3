package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vitern/vitern-api/internal/domain"
	"github.com/vitern/vitern-api/internal/infrastructure/sns"
	"github.com/vitern/vitern-api/internal/pkg/id"
)

type NotificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListUnread(ctx context.Context, accountID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error)
}

type Service interface {
	Notify(ctx context.Context, accountID, kind, message string) error
	Get(ctx context.Context, notificationID, accountID string) (*domain.Notification, error)
	ListUnread(ctx context.Context, accountID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID, accountID string) (*domain.Notification, error)
}

type service struct {
	repo   NotificationStore
	events sns.EventPublisher
}

func NewService(repo NotificationStore, events sns.EventPublisher) Service {
	return &service{repo: repo, events: events}
}

// Notify stores an in-app notification and mirrors it onto the event topic.
// The topic publish is best-effort; the stored row is the source of truth.
func (s *service) Notify(ctx context.Context, accountID, kind, message string) error {
	now := time.Now().UTC()
	n := &domain.Notification{
		NotificationID: id.New(),
		AccountID:      accountID,
		Kind:           kind,
		Message:        message,
		Read:           false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, n); err != nil {
		return err
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, kind, message); err != nil {
			slog.Warn("could not publish notification event", "kind", kind, "err", err)
		}
	}
	return nil
}

// Get returns one notification, scoped to its recipient.
func (s *service) Get(ctx context.Context, notificationID, accountID string) (*domain.Notification, error) {
	return s.owned(ctx, notificationID, accountID)
}

func (s *service) ListUnread(ctx context.Context, accountID string) ([]domain.Notification, error) {
	return s.repo.ListUnread(ctx, accountID)
}

func (s *service) MarkAsRead(ctx context.Context, notificationID, accountID string) (*domain.Notification, error) {
	if _, err := s.owned(ctx, notificationID, accountID); err != nil {
		return nil, err
	}
	return s.repo.MarkAsRead(ctx, notificationID)
}

func (s *service) owned(ctx context.Context, notificationID, accountID string) (*domain.Notification, error) {
	n, err := s.repo.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.AccountID != accountID {
		return nil, fmt.Errorf("notification belongs to another account: %w", domain.ErrForbidden)
	}
	return n, nil
}
