package mentorship

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vitern/vitern-api/internal/domain"
	"github.com/vitern/vitern-api/internal/pkg/id"
)

type RequestMentorshipRequest struct {
	MentorID string `json:"mentor_id" validate:"required"`
	Topic    string `json:"topic" validate:"required"`
}

type MentorshipStore interface {
	Put(ctx context.Context, m *domain.Mentorship) error
	Get(ctx context.Context, mentorshipID string) (*domain.Mentorship, error)
	UpdateStatus(ctx context.Context, mentorshipID, status string) error
	ListByMentor(ctx context.Context, mentorID string) ([]domain.Mentorship, error)
	ListByMentee(ctx context.Context, menteeID string) ([]domain.Mentorship, error)
}

type StudentStore interface {
	Get(ctx context.Context, studentID string) (*domain.Student, error)
}

type Notifier interface {
	Notify(ctx context.Context, accountID, kind, message string) error
}

type Service interface {
	Request(ctx context.Context, menteeID string, req RequestMentorshipRequest) (*domain.Mentorship, error)
	Decide(ctx context.Context, mentorID, mentorshipID, status string) (*domain.Mentorship, error)
	Complete(ctx context.Context, mentorID, mentorshipID string) (*domain.Mentorship, error)
	ListForMentor(ctx context.Context, mentorID string) ([]domain.Mentorship, error)
	ListForMentee(ctx context.Context, menteeID string) ([]domain.Mentorship, error)
}

type service struct {
	mentorships MentorshipStore
	students    StudentStore
	notifier    Notifier
}

func NewService(mentorships MentorshipStore, students StudentStore, notifier Notifier) Service {
	return &service{mentorships: mentorships, students: students, notifier: notifier}
}

// Request opens a pending mentorship from mentee to mentor. Both sides are
// students; seniors mentor juniors.
func (s *service) Request(ctx context.Context, menteeID string, req RequestMentorshipRequest) (*domain.Mentorship, error) {
	if req.MentorID == menteeID {
		return nil, fmt.Errorf("cannot request mentorship from yourself: %w", domain.ErrBadRequest)
	}

	mentor, err := s.students.Get(ctx, req.MentorID)
	if err != nil {
		return nil, fmt.Errorf("mentor lookup: %w", err)
	}

	// One live mentorship per (mentor, mentee) pair.
	existing, err := s.mentorships.ListByMentee(ctx, menteeID)
	if err == nil {
		for _, m := range existing {
			if m.MentorID == req.MentorID &&
				(m.Status == domain.MentorshipPending || m.Status == domain.MentorshipActive) {
				return nil, fmt.Errorf("mentorship with this mentor already exists: %w", domain.ErrConflict)
			}
		}
	}

	now := time.Now().UTC()
	m := &domain.Mentorship{
		MentorshipID: id.New(),
		MentorID:     req.MentorID,
		MenteeID:     menteeID,
		Topic:        req.Topic,
		Status:       domain.MentorshipPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.mentorships.Put(ctx, m); err != nil {
		return nil, err
	}

	s.notify(ctx, mentor.AccountID, domain.NotifMentorshipRequested,
		fmt.Sprintf("new mentorship request on %s", req.Topic))

	return m, nil
}

// Decide moves a pending request to active or declined. Only the mentor can decide.
func (s *service) Decide(ctx context.Context, mentorID, mentorshipID, status string) (*domain.Mentorship, error) {
	if status != domain.MentorshipActive && status != domain.MentorshipDeclined {
		return nil, fmt.Errorf("decision must be active or declined: %w", domain.ErrBadRequest)
	}

	m, err := s.mentorships.Get(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if m.MentorID != mentorID {
		return nil, fmt.Errorf("only the mentor decides: %w", domain.ErrForbidden)
	}
	if m.Status != domain.MentorshipPending {
		return nil, fmt.Errorf("mentorship already decided: %w", domain.ErrConflict)
	}

	if err := s.mentorships.UpdateStatus(ctx, mentorshipID, status); err != nil {
		return nil, err
	}
	m.Status = status

	if mentee, err := s.students.Get(ctx, m.MenteeID); err == nil {
		s.notify(ctx, mentee.AccountID, domain.NotifMentorshipDecided,
			fmt.Sprintf("your mentorship request on %s is %s", m.Topic, status))
	}

	return m, nil
}

// Complete closes an active mentorship.
func (s *service) Complete(ctx context.Context, mentorID, mentorshipID string) (*domain.Mentorship, error) {
	m, err := s.mentorships.Get(ctx, mentorshipID)
	if err != nil {
		return nil, err
	}
	if m.MentorID != mentorID {
		return nil, fmt.Errorf("only the mentor completes: %w", domain.ErrForbidden)
	}
	if m.Status != domain.MentorshipActive {
		return nil, fmt.Errorf("mentorship is not active: %w", domain.ErrConflict)
	}

	if err := s.mentorships.UpdateStatus(ctx, mentorshipID, domain.MentorshipCompleted); err != nil {
		return nil, err
	}
	m.Status = domain.MentorshipCompleted
	return m, nil
}

func (s *service) ListForMentor(ctx context.Context, mentorID string) ([]domain.Mentorship, error) {
	return s.mentorships.ListByMentor(ctx, mentorID)
}

func (s *service) ListForMentee(ctx context.Context, menteeID string) ([]domain.Mentorship, error) {
	return s.mentorships.ListByMentee(ctx, menteeID)
}

func (s *service) notify(ctx context.Context, accountID, kind, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, accountID, kind, message); err != nil {
		slog.Warn("could not deliver notification", "account_id", accountID, "kind", kind, "err", err)
	}
}
