package badge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vitern/vitern-api/internal/domain"
	"github.com/vitern/vitern-api/internal/pkg/id"
)

type AwardRequest struct {
	StudentID   string `json:"student_id" validate:"required"`
	BadgeType   string `json:"badge_type" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type BadgeStore interface {
	Put(ctx context.Context, b *domain.Badge) error
	ListByStudent(ctx context.Context, studentID string) ([]domain.Badge, error)
}

type StudentStore interface {
	Get(ctx context.Context, studentID string) (*domain.Student, error)
}

type Notifier interface {
	Notify(ctx context.Context, accountID, kind, message string) error
}

type Service interface {
	Award(ctx context.Context, recruiterID string, req AwardRequest) (*domain.Badge, error)
	ListForStudent(ctx context.Context, studentID string) ([]domain.Badge, error)
}

type service struct {
	badges   BadgeStore
	students StudentStore
	notifier Notifier
}

func NewService(badges BadgeStore, students StudentStore, notifier Notifier) Service {
	return &service{badges: badges, students: students, notifier: notifier}
}

// Award pins a badge to a student. A student may hold the same badge type
// more than once; each award stands on its own.
func (s *service) Award(ctx context.Context, recruiterID string, req AwardRequest) (*domain.Badge, error) {
	if !domain.ValidBadgeType(req.BadgeType) {
		return nil, fmt.Errorf("unknown badge type %q: %w", req.BadgeType, domain.ErrBadRequest)
	}

	st, err := s.students.Get(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	b := &domain.Badge{
		BadgeID:     id.New(),
		StudentID:   req.StudentID,
		BadgeType:   req.BadgeType,
		Title:       req.Title,
		Description: req.Description,
		AwardedBy:   recruiterID,
		AwardedAt:   time.Now().UTC(),
	}
	if err := s.badges.Put(ctx, b); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, st.AccountID, domain.NotifBadgeAwarded,
			fmt.Sprintf("you earned the %s badge", req.Title)); err != nil {
			slog.Warn("could not deliver notification", "account_id", st.AccountID, "err", err)
		}
	}

	return b, nil
}

func (s *service) ListForStudent(ctx context.Context, studentID string) ([]domain.Badge, error) {
	return s.badges.ListByStudent(ctx, studentID)
}
