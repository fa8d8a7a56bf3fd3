package registration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vitern/vitern-api/internal/domain"
	"github.com/vitern/vitern-api/internal/infrastructure/smtp"
	"github.com/vitern/vitern-api/internal/infrastructure/sns"
	"github.com/vitern/vitern-api/internal/pkg/id"
	pkgtoken "github.com/vitern/vitern-api/internal/pkg/token"
)

type SendOTPRequest struct {
	Email    string `json:"email" validate:"required,email"`
	UserType string `json:"type" validate:"required"`
}

// UserData carries the wizard's profile fields, submitted alongside the code
// on the final verification step.
type UserData struct {
	Name        string           `json:"name"`
	RegNumber   string           `json:"regNumber"`
	Age         int              `json:"age"`
	CGPA        float64          `json:"cgpa"`
	YearOfStudy string           `json:"yearOfStudy"`
	Skills      []string         `json:"skills"`
	Projects    []domain.Project `json:"projects"`
	Experience  string           `json:"experience"`
	Company     string           `json:"company"`
	Position    string           `json:"position"`
}

type VerifyOTPRequest struct {
	Email    string    `json:"email" validate:"required,email"`
	OTP      string    `json:"otp" validate:"required,len=6"`
	UserType string    `json:"type" validate:"required"`
	UserData *UserData `json:"userData"`
}

// VerifyResult is the outcome of a successful verification: a confirmed
// account and a one-time magic sign-in link for the front-end redirect.
type VerifyResult struct {
	Account    *domain.Account
	Profile    *domain.Profile
	SignInLink string
}

// OTPStore persists and consumes verification codes.
type OTPStore interface {
	Put(ctx context.Context, v *domain.OTPVerification) error
	FindMatch(ctx context.Context, email, code string, now time.Time) (*domain.OTPVerification, error)
	Consume(ctx context.Context, otpID string) error
}

type StudentStore interface {
	Put(ctx context.Context, s *domain.Student) error
}

type RecruiterStore interface {
	Put(ctx context.Context, r *domain.Recruiter) error
}

// IdentityProvider owns account lifecycle during registration. Verification
// drives it through exactly three calls: create, roll back on profile failure,
// and mint the post-signup sign-in link.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, userType string) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
	GenerateSignInLink(ctx context.Context, account *domain.Account) (string, error)
}

type Service interface {
	SendOTP(ctx context.Context, req SendOTPRequest) (otpID string, err error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyResult, error)
}

type ServiceDeps struct {
	OTPRepo       OTPStore
	StudentRepo   StudentStore
	RecruiterRepo RecruiterStore
	Identity      IdentityProvider
	Mailer        smtp.Mailer
	Events        sns.EventPublisher
	StudentDomain string
	OTPExpiry     time.Duration
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	return &service{deps: deps}
}

func (s *service) SendOTP(ctx context.Context, req SendOTPRequest) (string, error) {
	if !domain.ValidUserType(req.UserType) {
		return "", fmt.Errorf("unknown user type %q: %w", req.UserType, domain.ErrBadRequest)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if req.UserType == domain.UserTypeStudent && !strings.HasSuffix(email, s.deps.StudentDomain) {
		return "", fmt.Errorf("students must register with a %s address: %w",
			s.deps.StudentDomain, domain.ErrInvalidEmailDomain)
	}

	code, err := pkgtoken.NewOTPCode()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	v := &domain.OTPVerification{
		OTPID:     id.New(),
		Email:     email,
		Code:      code,
		Used:      false,
		CreatedAt: now,
		ExpiresAt: now.Add(s.deps.OTPExpiry).Unix(),
	}
	if err := s.deps.OTPRepo.Put(ctx, v); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}

	body := fmt.Sprintf("Your VITERN verification code is %s. It expires in %d minutes.",
		code, int(s.deps.OTPExpiry.Minutes()))
	if err := s.deps.Mailer.SendEmail(email, "VITERN Email Verification", body); err != nil {
		return "", fmt.Errorf("send otp email: %w", err)
	}

	return v.OTPID, nil
}

// VerifyOTP runs the verification pipeline in strict order: match the code,
// consume it, create the account, create the profile, mint the sign-in link.
// A step only runs if every earlier step succeeded. Profile failure rolls the
// account back so a retry of the whole flow starts clean.
func (s *service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyResult, error) {
	if !domain.ValidUserType(req.UserType) {
		return nil, fmt.Errorf("unknown user type %q: %w", req.UserType, domain.ErrBadRequest)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	now := time.Now().UTC()

	v, err := s.deps.OTPRepo.FindMatch(ctx, email, req.OTP, now)
	if err != nil {
		return nil, fmt.Errorf("no matching code: %w", domain.ErrInvalidOrExpiredCode)
	}

	// Conditional write; only one concurrent caller can flip used=false to true.
	if err := s.deps.OTPRepo.Consume(ctx, v.OTPID); err != nil {
		return nil, fmt.Errorf("code already consumed: %w", domain.ErrInvalidOrExpiredCode)
	}

	account, err := s.deps.Identity.CreateAccount(ctx, email, req.UserType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIdentityCreation, err)
	}

	profile, err := s.createProfile(ctx, account, req.UserData)
	if err != nil {
		if rbErr := s.deps.Identity.DeleteAccount(ctx, account.AccountID); rbErr != nil {
			slog.Warn("account rollback failed after profile error",
				"account_id", account.AccountID, "err", rbErr)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProfileCreation, err)
	}

	link, err := s.deps.Identity.GenerateSignInLink(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSignInLinkGeneration, err)
	}

	if s.deps.Events != nil {
		if err := s.deps.Events.Publish(ctx, "registration.completed", email); err != nil {
			slog.Warn("could not publish registration event", "err", err)
		}
	}

	return &VerifyResult{Account: account, Profile: profile, SignInLink: link}, nil
}

func (s *service) createProfile(ctx context.Context, account *domain.Account, data *UserData) (*domain.Profile, error) {
	if data == nil {
		data = &UserData{}
	}
	now := time.Now().UTC()

	switch account.UserType {
	case domain.UserTypeStudent:
		st := &domain.Student{
			StudentID:   id.New(),
			AccountID:   account.AccountID,
			Name:        data.Name,
			Email:       account.Email,
			RegNumber:   data.RegNumber,
			Age:         data.Age,
			CGPA:        data.CGPA,
			YearOfStudy: data.YearOfStudy,
			Skills:      data.Skills,
			Projects:    data.Projects,
			Experience:  data.Experience,
			Verified:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if st.YearOfStudy != "" && !domain.ValidYearOfStudy(st.YearOfStudy) {
			return nil, fmt.Errorf("invalid year of study %q", st.YearOfStudy)
		}
		if err := s.deps.StudentRepo.Put(ctx, st); err != nil {
			return nil, err
		}
		return &domain.Profile{Kind: domain.ProfileStudent, Student: st}, nil

	case domain.UserTypeRecruiter:
		rec := &domain.Recruiter{
			RecruiterID: id.New(),
			AccountID:   account.AccountID,
			Name:        data.Name,
			Email:       account.Email,
			Company:     data.Company,
			Position:    data.Position,
			Verified:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.deps.RecruiterRepo.Put(ctx, rec); err != nil {
			return nil, err
		}
		return &domain.Profile{Kind: domain.ProfileRecruiter, Recruiter: rec}, nil
	}

	return nil, fmt.Errorf("unknown user type %q", account.UserType)
}
