package resume

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vitern/vitern-api/internal/domain"
	"github.com/vitern/vitern-api/internal/pkg/id"
)

const linkTTL = 24 * time.Hour

type ResumeStore interface {
	Put(ctx context.Context, r *domain.Resume) error
	Get(ctx context.Context, resumeID string) (*domain.Resume, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Resume, error)
	Delete(ctx context.Context, resumeID string) error
}

type StudentStore interface {
	Get(ctx context.Context, studentID string) (*domain.Student, error)
}

type BadgeStore interface {
	ListByStudent(ctx context.Context, studentID string) ([]domain.Badge, error)
}

// ObjectStore is the S3 surface the generator needs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Service interface {
	Generate(ctx context.Context, studentID string) (*domain.Resume, error)
	List(ctx context.Context, studentID string) ([]domain.Resume, error)
	Download(ctx context.Context, studentID, resumeID string) (*domain.Resume, io.ReadCloser, error)
	Link(ctx context.Context, studentID, resumeID string) (string, error)
	Delete(ctx context.Context, studentID, resumeID string) error
}

type service struct {
	resumes  ResumeStore
	students StudentStore
	badges   BadgeStore
	objects  ObjectStore
}

func NewService(resumes ResumeStore, students StudentStore, badges BadgeStore, objects ObjectStore) Service {
	return &service{resumes: resumes, students: students, badges: badges, objects: objects}
}

// Generate renders the student's profile to PDF, uploads it, and records the
// resume row. Badges are included as achievements.
func (s *service) Generate(ctx context.Context, studentID string) (*domain.Resume, error) {
	st, err := s.students.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	badges, err := s.badges.ListByStudent(ctx, studentID)
	if err != nil {
		badges = nil
	}

	pdfBytes, err := renderPDF(st, badges)
	if err != nil {
		return nil, err
	}

	resumeID := id.New()
	key := fmt.Sprintf("resumes/%s/%s.pdf", studentID, resumeID)
	url, err := s.objects.Upload(ctx, key, bytes.NewReader(pdfBytes), "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}

	res := &domain.Resume{
		ResumeID:  resumeID,
		StudentID: studentID,
		ObjectKey: key,
		URL:       url,
		SizeBytes: int64(len(pdfBytes)),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.resumes.Put(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) List(ctx context.Context, studentID string) ([]domain.Resume, error) {
	return s.resumes.ListByStudent(ctx, studentID)
}

// Download streams the stored PDF. Only the owning student may fetch it.
func (s *service) Download(ctx context.Context, studentID, resumeID string) (*domain.Resume, io.ReadCloser, error) {
	res, err := s.owned(ctx, studentID, resumeID)
	if err != nil {
		return nil, nil, err
	}
	body, err := s.objects.Download(ctx, res.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download resume object: %w", err)
	}
	return res, body, nil
}

// Link returns a time-limited download URL. Only the owning student may fetch it.
func (s *service) Link(ctx context.Context, studentID, resumeID string) (string, error) {
	res, err := s.owned(ctx, studentID, resumeID)
	if err != nil {
		return "", err
	}
	return s.objects.PresignedURL(ctx, res.ObjectKey, linkTTL)
}

func (s *service) Delete(ctx context.Context, studentID, resumeID string) error {
	res, err := s.owned(ctx, studentID, resumeID)
	if err != nil {
		return err
	}
	if err := s.objects.Delete(ctx, res.ObjectKey); err != nil {
		return fmt.Errorf("delete resume object: %w", err)
	}
	return s.resumes.Delete(ctx, resumeID)
}

func (s *service) owned(ctx context.Context, studentID, resumeID string) (*domain.Resume, error) {
	res, err := s.resumes.Get(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if res.StudentID != studentID {
		return nil, fmt.Errorf("resume belongs to another student: %w", domain.ErrForbidden)
	}
	return res, nil
}
