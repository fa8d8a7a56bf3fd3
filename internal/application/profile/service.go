package profile

import (
	"context"
	"fmt"

	"github.com/vitern/vitern-api/internal/domain"
)

type UpdateStudentRequest struct {
	Name        *string           `json:"name"`
	Age         *int              `json:"age" validate:"omitempty,gte=16,lte=60"`
	CGPA        *float64          `json:"cgpa" validate:"omitempty,gte=0,lte=10"`
	YearOfStudy *string           `json:"year_of_study"`
	Skills      *[]string         `json:"skills"`
	Projects    *[]domain.Project `json:"projects"`
	Experience  *string           `json:"experience"`
}

type UpdateRecruiterRequest struct {
	Name     *string `json:"name"`
	Company  *string `json:"company"`
	Position *string `json:"position"`
}

type AccountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
}

type StudentStore interface {
	GetByAccountID(ctx context.Context, accountID string) (*domain.Student, error)
	Update(ctx context.Context, studentID string, updates map[string]interface{}) error
}

type RecruiterStore interface {
	GetByAccountID(ctx context.Context, accountID string) (*domain.Recruiter, error)
	Update(ctx context.Context, recruiterID string, updates map[string]interface{}) error
}

type Service interface {
	Resolve(ctx context.Context, accountID string) (*domain.Profile, error)
	UpdateStudent(ctx context.Context, accountID string, req UpdateStudentRequest) (*domain.Student, error)
	UpdateRecruiter(ctx context.Context, accountID string, req UpdateRecruiterRequest) (*domain.Recruiter, error)
}

type service struct {
	accountRepo   AccountStore
	studentRepo   StudentStore
	recruiterRepo RecruiterStore
}

func NewService(accountRepo AccountStore, studentRepo StudentStore, recruiterRepo RecruiterStore) Service {
	return &service{accountRepo: accountRepo, studentRepo: studentRepo, recruiterRepo: recruiterRepo}
}

// Resolve returns the profile variant named by the account's user_type with a
// single keyed lookup. It never probes one table and falls back to the other;
// an account whose profile row is missing resolves to ProfileNone.
func (s *service) Resolve(ctx context.Context, accountID string) (*domain.Profile, error) {
	account, err := s.accountRepo.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	switch account.UserType {
	case domain.UserTypeStudent:
		st, err := s.studentRepo.GetByAccountID(ctx, accountID)
		if err != nil {
			return &domain.Profile{Kind: domain.ProfileNone}, nil
		}
		return &domain.Profile{Kind: domain.ProfileStudent, Student: st}, nil
	case domain.UserTypeRecruiter:
		rec, err := s.recruiterRepo.GetByAccountID(ctx, accountID)
		if err != nil {
			return &domain.Profile{Kind: domain.ProfileNone}, nil
		}
		return &domain.Profile{Kind: domain.ProfileRecruiter, Recruiter: rec}, nil
	}
	return &domain.Profile{Kind: domain.ProfileNone}, nil
}

func (s *service) UpdateStudent(ctx context.Context, accountID string, req UpdateStudentRequest) (*domain.Student, error) {
	st, err := s.studentRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.CGPA != nil {
		updates["cgpa"] = *req.CGPA
	}
	if req.YearOfStudy != nil {
		if !domain.ValidYearOfStudy(*req.YearOfStudy) {
			return nil, fmt.Errorf("invalid year of study %q: %w", *req.YearOfStudy, domain.ErrBadRequest)
		}
		updates["year_of_study"] = *req.YearOfStudy
	}
	if req.Skills != nil {
		updates["skills"] = *req.Skills
	}
	if req.Projects != nil {
		updates["projects"] = *req.Projects
	}
	if req.Experience != nil {
		updates["experience"] = *req.Experience
	}
	if len(updates) == 0 {
		return st, nil
	}

	if err := s.studentRepo.Update(ctx, st.StudentID, updates); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByAccountID(ctx, accountID)
}

func (s *service) UpdateRecruiter(ctx context.Context, accountID string, req UpdateRecruiterRequest) (*domain.Recruiter, error) {
	rec, err := s.recruiterRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Company != nil {
		updates["company"] = *req.Company
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if len(updates) == 0 {
		return rec, nil
	}

	if err := s.recruiterRepo.Update(ctx, rec.RecruiterID, updates); err != nil {
		return nil, err
	}
	return s.recruiterRepo.GetByAccountID(ctx, accountID)
}
