package internship

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vitern/vitern-api/internal/domain"
	"github.com/vitern/vitern-api/internal/pkg/id"
)

type CreateRequest struct {
	Title               string     `json:"title" validate:"required"`
	Company             string     `json:"company" validate:"required"`
	Description         string     `json:"description"`
	Location            string     `json:"location"`
	Stipend             string     `json:"stipend"`
	Duration            string     `json:"duration"`
	MinCGPA             float64    `json:"min_cgpa" validate:"omitempty,gte=0,lte=10"`
	RequiredSkills      []string   `json:"required_skills"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
}

type UpdateRequest struct {
	Title               *string    `json:"title"`
	Description         *string    `json:"description"`
	Location            *string    `json:"location"`
	Stipend             *string    `json:"stipend"`
	MinCGPA             *float64   `json:"min_cgpa" validate:"omitempty,gte=0,lte=10"`
	RequiredSkills      *[]string  `json:"required_skills"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	Status              *string    `json:"status"`
}

type InternshipStore interface {
	Put(ctx context.Context, i *domain.Internship) error
	Get(ctx context.Context, internshipID string) (*domain.Internship, error)
	Update(ctx context.Context, internshipID string, updates map[string]interface{}) error
	ListByStatus(ctx context.Context, status string) ([]domain.Internship, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.Internship, error)
}

type ApplicationStore interface {
	Put(ctx context.Context, a *domain.InternshipApplication) error
	Get(ctx context.Context, applicationID string) (*domain.InternshipApplication, error)
	UpdateStatus(ctx context.Context, applicationID, status string) error
	ListByInternship(ctx context.Context, internshipID string) ([]domain.InternshipApplication, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.InternshipApplication, error)
	GetByInternshipAndStudent(ctx context.Context, internshipID, studentID string) (*domain.InternshipApplication, error)
}

type StudentStore interface {
	Get(ctx context.Context, studentID string) (*domain.Student, error)
}

type RecruiterStore interface {
	Get(ctx context.Context, recruiterID string) (*domain.Recruiter, error)
}

// Notifier records an in-app notification for an account. Failures are logged
// and never fail the triggering operation.
type Notifier interface {
	Notify(ctx context.Context, accountID, kind, message string) error
}

type Service interface {
	Create(ctx context.Context, recruiterID string, req CreateRequest) (*domain.Internship, error)
	Get(ctx context.Context, internshipID string) (*domain.Internship, error)
	Update(ctx context.Context, recruiterID, internshipID string, req UpdateRequest) (*domain.Internship, error)
	ListOpen(ctx context.Context) ([]domain.Internship, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.Internship, error)
	Apply(ctx context.Context, studentID, internshipID string) (*domain.InternshipApplication, error)
	Decide(ctx context.Context, recruiterID, applicationID, status string) (*domain.InternshipApplication, error)
	ListApplications(ctx context.Context, recruiterID, internshipID string) ([]domain.InternshipApplication, error)
	ListStudentApplications(ctx context.Context, studentID string) ([]domain.InternshipApplication, error)
}

type ServiceDeps struct {
	InternshipRepo  InternshipStore
	ApplicationRepo ApplicationStore
	StudentRepo     StudentStore
	RecruiterRepo   RecruiterStore
	Notifier        Notifier
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	return &service{deps: deps}
}

func (s *service) Create(ctx context.Context, recruiterID string, req CreateRequest) (*domain.Internship, error) {
	now := time.Now().UTC()
	in := &domain.Internship{
		InternshipID:        id.New(),
		RecruiterID:         recruiterID,
		Title:               req.Title,
		Company:             req.Company,
		Description:         req.Description,
		Location:            req.Location,
		Stipend:             req.Stipend,
		Duration:            req.Duration,
		MinCGPA:             req.MinCGPA,
		RequiredSkills:      req.RequiredSkills,
		ApplicationDeadline: req.ApplicationDeadline,
		Status:              domain.InternshipOpen,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.deps.InternshipRepo.Put(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *service) Get(ctx context.Context, internshipID string) (*domain.Internship, error) {
	return s.deps.InternshipRepo.Get(ctx, internshipID)
}

func (s *service) Update(ctx context.Context, recruiterID, internshipID string, req UpdateRequest) (*domain.Internship, error) {
	in, err := s.deps.InternshipRepo.Get(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	if in.RecruiterID != recruiterID {
		return nil, fmt.Errorf("internship belongs to another recruiter: %w", domain.ErrForbidden)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Stipend != nil {
		updates["stipend"] = *req.Stipend
	}
	if req.MinCGPA != nil {
		updates["min_cgpa"] = *req.MinCGPA
	}
	if req.RequiredSkills != nil {
		updates["required_skills"] = *req.RequiredSkills
	}
	if req.ApplicationDeadline != nil {
		updates["application_deadline"] = *req.ApplicationDeadline
	}
	if req.Status != nil {
		if !domain.ValidInternshipStatus(*req.Status) {
			return nil, fmt.Errorf("invalid status %q: %w", *req.Status, domain.ErrBadRequest)
		}
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return in, nil
	}

	if err := s.deps.InternshipRepo.Update(ctx, internshipID, updates); err != nil {
		return nil, err
	}
	return s.deps.InternshipRepo.Get(ctx, internshipID)
}

func (s *service) ListOpen(ctx context.Context) ([]domain.Internship, error) {
	return s.deps.InternshipRepo.ListByStatus(ctx, domain.InternshipOpen)
}

func (s *service) ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.Internship, error) {
	return s.deps.InternshipRepo.ListByRecruiter(ctx, recruiterID)
}

// Apply checks every gate in order: the posting is open, the deadline has not
// passed, the student's CGPA meets the minimum, and no prior application
// exists for this pair.
func (s *service) Apply(ctx context.Context, studentID, internshipID string) (*domain.InternshipApplication, error) {
	in, err := s.deps.InternshipRepo.Get(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	if in.Status != domain.InternshipOpen {
		return nil, fmt.Errorf("internship is not accepting applications: %w", domain.ErrConflict)
	}
	if in.ApplicationDeadline != nil && in.ApplicationDeadline.Before(time.Now()) {
		return nil, fmt.Errorf("application deadline has passed: %w", domain.ErrConflict)
	}

	st, err := s.deps.StudentRepo.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if st.CGPA < in.MinCGPA {
		return nil, fmt.Errorf("cgpa %.2f below required %.2f: %w", st.CGPA, in.MinCGPA, domain.ErrForbidden)
	}

	if existing, err := s.deps.ApplicationRepo.GetByInternshipAndStudent(ctx, internshipID, studentID); err == nil && existing != nil {
		return nil, fmt.Errorf("already applied: %w", domain.ErrConflict)
	}

	app := &domain.InternshipApplication{
		ApplicationID: id.New(),
		InternshipID:  internshipID,
		StudentID:     studentID,
		Status:        domain.ApplicationPending,
		AppliedAt:     time.Now().UTC(),
	}
	if err := s.deps.ApplicationRepo.Put(ctx, app); err != nil {
		return nil, err
	}

	s.notifyRecruiter(ctx, in.RecruiterID, domain.NotifApplicationSubmitted,
		fmt.Sprintf("%s applied to %s", st.Name, in.Title))

	return app, nil
}

func (s *service) Decide(ctx context.Context, recruiterID, applicationID, status string) (*domain.InternshipApplication, error) {
	if status != domain.ApplicationAccepted && status != domain.ApplicationRejected {
		return nil, fmt.Errorf("decision must be accepted or rejected: %w", domain.ErrBadRequest)
	}

	app, err := s.deps.ApplicationRepo.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	in, err := s.deps.InternshipRepo.Get(ctx, app.InternshipID)
	if err != nil {
		return nil, err
	}
	if in.RecruiterID != recruiterID {
		return nil, fmt.Errorf("application belongs to another recruiter's posting: %w", domain.ErrForbidden)
	}
	if app.Status != domain.ApplicationPending {
		return nil, fmt.Errorf("application already decided: %w", domain.ErrConflict)
	}

	if err := s.deps.ApplicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, err
	}
	app.Status = status

	if st, err := s.deps.StudentRepo.Get(ctx, app.StudentID); err == nil {
		s.notify(ctx, st.AccountID, domain.NotifApplicationDecided,
			fmt.Sprintf("your application to %s was %s", in.Title, status))
	}

	return app, nil
}

func (s *service) ListApplications(ctx context.Context, recruiterID, internshipID string) ([]domain.InternshipApplication, error) {
	in, err := s.deps.InternshipRepo.Get(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	if in.RecruiterID != recruiterID {
		return nil, fmt.Errorf("internship belongs to another recruiter: %w", domain.ErrForbidden)
	}
	return s.deps.ApplicationRepo.ListByInternship(ctx, internshipID)
}

func (s *service) ListStudentApplications(ctx context.Context, studentID string) ([]domain.InternshipApplication, error) {
	return s.deps.ApplicationRepo.ListByStudent(ctx, studentID)
}

func (s *service) notifyRecruiter(ctx context.Context, recruiterID, kind, message string) {
	rec, err := s.deps.RecruiterRepo.Get(ctx, recruiterID)
	if err != nil {
		slog.Warn("could not resolve recruiter for notification", "recruiter_id", recruiterID, "err", err)
		return
	}
	s.notify(ctx, rec.AccountID, kind, message)
}

func (s *service) notify(ctx context.Context, accountID, kind, message string) {
	if s.deps.Notifier == nil {
		return
	}
	if err := s.deps.Notifier.Notify(ctx, accountID, kind, message); err != nil {
		slog.Warn("could not deliver notification", "account_id", accountID, "kind", kind, "err", err)
	}
}
