package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vitern/vitern-api/internal/domain"
)

// --- mocks ---

type mockOTPStore struct{ mock.Mock }

func (m *mockOTPStore) Put(ctx context.Context, v *domain.OTPVerification) error {
	return m.Called(ctx, v).Error(0)
}
func (m *mockOTPStore) FindMatch(ctx context.Context, email, code string, now time.Time) (*domain.OTPVerification, error) {
	args := m.Called(ctx, email, code, now)
	if v, _ := args.Get(0).(*domain.OTPVerification); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOTPStore) Consume(ctx context.Context, otpID string) error {
	return m.Called(ctx, otpID).Error(0)
}

type mockStudentStore struct{ mock.Mock }

func (m *mockStudentStore) Put(ctx context.Context, s *domain.Student) error {
	return m.Called(ctx, s).Error(0)
}

type mockRecruiterStore struct{ mock.Mock }

func (m *mockRecruiterStore) Put(ctx context.Context, r *domain.Recruiter) error {
	return m.Called(ctx, r).Error(0)
}

type mockIdentity struct{ mock.Mock }

func (m *mockIdentity) CreateAccount(ctx context.Context, email, userType string) (*domain.Account, error) {
	args := m.Called(ctx, email, userType)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockIdentity) DeleteAccount(ctx context.Context, accountID string) error {
	return m.Called(ctx, accountID).Error(0)
}
func (m *mockIdentity) GenerateSignInLink(ctx context.Context, account *domain.Account) (string, error) {
	args := m.Called(ctx, account)
	return args.String(0), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

// --- builder ---

const testStudentDomain = "@vitstudent.ac.in"

func newService(os *mockOTPStore, ss *mockStudentStore, rs *mockRecruiterStore, idp *mockIdentity, ml *mockMailer) Service {
	return NewService(ServiceDeps{
		OTPRepo:       os,
		StudentRepo:   ss,
		RecruiterRepo: rs,
		Identity:      idp,
		Mailer:        ml,
		StudentDomain: testStudentDomain,
		OTPExpiry:     10 * time.Minute,
	})
}

// --- SendOTP ---

func TestSendOTP_UnknownType_BadRequest(t *testing.T) {
	svc := newService(nil, nil, nil, nil, nil)
	_, err := svc.SendOTP(context.Background(), SendOTPRequest{
		Email: "a@b.com", UserType: "admin",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestSendOTP_StudentWrongDomain_Rejected(t *testing.T) {
	os := &mockOTPStore{}
	ml := &mockMailer{}
	svc := newService(os, nil, nil, nil, ml)

	_, err := svc.SendOTP(context.Background(), SendOTPRequest{
		Email: "someone@gmail.com", UserType: domain.UserTypeStudent,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidEmailDomain))
	os.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	ml.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendOTP_StudentDomain_CaseInsensitive(t *testing.T) {
	os := &mockOTPStore{}
	ml := &mockMailer{}
	os.On("Put", mock.Anything, mock.AnythingOfType("*domain.OTPVerification")).Return(nil)
	ml.On("SendEmail", "jane@vitstudent.ac.in", mock.Anything, mock.Anything).Return(nil)

	svc := newService(os, nil, nil, nil, ml)
	otpID, err := svc.SendOTP(context.Background(), SendOTPRequest{
		Email: "Jane@VITstudent.AC.in", UserType: domain.UserTypeStudent,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, otpID)
	ml.AssertExpectations(t)
}

func TestSendOTP_RecruiterAnyDomain_OK(t *testing.T) {
	os := &mockOTPStore{}
	ml := &mockMailer{}
	os.On("Put", mock.Anything, mock.AnythingOfType("*domain.OTPVerification")).Return(nil)
	ml.On("SendEmail", "hr@acme.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(os, nil, nil, nil, ml)
	_, err := svc.SendOTP(context.Background(), SendOTPRequest{
		Email: "hr@acme.com", UserType: domain.UserTypeRecruiter,
	})

	require.NoError(t, err)
	ml.AssertExpectations(t)
}

func TestSendOTP_StoresCodeBeforeSending(t *testing.T) {
	os := &mockOTPStore{}
	ml := &mockMailer{}

	var stored *domain.OTPVerification
	os.On("Put", mock.Anything, mock.AnythingOfType("*domain.OTPVerification")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.OTPVerification)
		}).Return(nil)
	ml.On("SendEmail", "jane@vitstudent.ac.in", "VITERN Email Verification", mock.Anything).Return(nil)

	svc := newService(os, nil, nil, nil, ml)
	otpID, err := svc.SendOTP(context.Background(), SendOTPRequest{
		Email: "jane@vitstudent.ac.in", UserType: domain.UserTypeStudent,
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, stored.OTPID, otpID)
	assert.Len(t, stored.Code, 6)
	assert.False(t, stored.Used)
	assert.Greater(t, stored.ExpiresAt, time.Now().Unix())

	// The mailed body carries the stored code verbatim.
	body := ml.Calls[0].Arguments.String(2)
	assert.Contains(t, body, stored.Code)
}

func TestSendOTP_StoreFailure_NoEmailSent(t *testing.T) {
	os := &mockOTPStore{}
	ml := &mockMailer{}
	os.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

	svc := newService(os, nil, nil, nil, ml)
	_, err := svc.SendOTP(context.Background(), SendOTPRequest{
		Email: "hr@acme.com", UserType: domain.UserTypeRecruiter,
	})

	require.Error(t, err)
	ml.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendOTP_MailFailure_ReturnsError(t *testing.T) {
	os := &mockOTPStore{}
	ml := &mockMailer{}
	os.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp refused"))

	svc := newService(os, nil, nil, nil, ml)
	_, err := svc.SendOTP(context.Background(), SendOTPRequest{
		Email: "hr@acme.com", UserType: domain.UserTypeRecruiter,
	})
	require.Error(t, err)
}

// --- VerifyOTP ---

func studentVerifyReq() VerifyOTPRequest {
	return VerifyOTPRequest{
		Email:    "jane@vitstudent.ac.in",
		OTP:      "123456",
		UserType: domain.UserTypeStudent,
		UserData: &UserData{
			Name:        "Jane",
			RegNumber:   "21BCE1001",
			Age:         20,
			CGPA:        8.7,
			YearOfStudy: domain.Year3rd,
			Skills:      []string{"go", "sql"},
		},
	}
}

func TestVerifyOTP_NoMatch_InvalidOrExpired(t *testing.T) {
	os := &mockOTPStore{}
	os.On("FindMatch", mock.Anything, "jane@vitstudent.ac.in", "123456", mock.Anything).
		Return(nil, domain.ErrNotFound)

	svc := newService(os, nil, nil, nil, nil)
	_, err := svc.VerifyOTP(context.Background(), studentVerifyReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidOrExpiredCode))
	os.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
}

func TestVerifyOTP_ConsumeLostRace_InvalidOrExpired(t *testing.T) {
	os := &mockOTPStore{}
	idp := &mockIdentity{}
	os.On("FindMatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.OTPVerification{OTPID: "otp1"}, nil)
	os.On("Consume", mock.Anything, "otp1").Return(domain.ErrNotFound)

	svc := newService(os, nil, nil, idp, nil)
	_, err := svc.VerifyOTP(context.Background(), studentVerifyReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidOrExpiredCode))
	idp.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyOTP_IdentityFailure(t *testing.T) {
	os := &mockOTPStore{}
	idp := &mockIdentity{}
	os.On("FindMatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.OTPVerification{OTPID: "otp1"}, nil)
	os.On("Consume", mock.Anything, "otp1").Return(nil)
	idp.On("CreateAccount", mock.Anything, "jane@vitstudent.ac.in", domain.UserTypeStudent).
		Return(nil, errors.New("email already registered"))

	svc := newService(os, nil, nil, idp, nil)
	_, err := svc.VerifyOTP(context.Background(), studentVerifyReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIdentityCreation))
}

func TestVerifyOTP_ProfileFailure_RollsBackAccount(t *testing.T) {
	os := &mockOTPStore{}
	ss := &mockStudentStore{}
	idp := &mockIdentity{}

	account := &domain.Account{AccountID: "acc1", Email: "jane@vitstudent.ac.in", UserType: domain.UserTypeStudent}
	os.On("FindMatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.OTPVerification{OTPID: "otp1"}, nil)
	os.On("Consume", mock.Anything, "otp1").Return(nil)
	idp.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything).Return(account, nil)
	ss.On("Put", mock.Anything, mock.AnythingOfType("*domain.Student")).Return(errors.New("dynamo down"))
	idp.On("DeleteAccount", mock.Anything, "acc1").Return(nil)

	svc := newService(os, ss, nil, idp, nil)
	_, err := svc.VerifyOTP(context.Background(), studentVerifyReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProfileCreation))
	idp.AssertCalled(t, "DeleteAccount", mock.Anything, "acc1")
}

func TestVerifyOTP_SignInLinkFailure_NoRollback(t *testing.T) {
	os := &mockOTPStore{}
	ss := &mockStudentStore{}
	idp := &mockIdentity{}

	account := &domain.Account{AccountID: "acc1", Email: "jane@vitstudent.ac.in", UserType: domain.UserTypeStudent}
	os.On("FindMatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.OTPVerification{OTPID: "otp1"}, nil)
	os.On("Consume", mock.Anything, "otp1").Return(nil)
	idp.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything).Return(account, nil)
	ss.On("Put", mock.Anything, mock.Anything).Return(nil)
	idp.On("GenerateSignInLink", mock.Anything, account).Return("", errors.New("token store down"))

	svc := newService(os, ss, nil, idp, nil)
	_, err := svc.VerifyOTP(context.Background(), studentVerifyReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSignInLinkGeneration))
	// Profile creation already succeeded; the account stays.
	idp.AssertNotCalled(t, "DeleteAccount", mock.Anything, mock.Anything)
}

func TestVerifyOTP_HappyPath_Student(t *testing.T) {
	os := &mockOTPStore{}
	ss := &mockStudentStore{}
	idp := &mockIdentity{}

	account := &domain.Account{AccountID: "acc1", Email: "jane@vitstudent.ac.in", UserType: domain.UserTypeStudent}
	os.On("FindMatch", mock.Anything, "jane@vitstudent.ac.in", "123456", mock.Anything).
		Return(&domain.OTPVerification{OTPID: "otp1"}, nil)
	os.On("Consume", mock.Anything, "otp1").Return(nil)
	idp.On("CreateAccount", mock.Anything, "jane@vitstudent.ac.in", domain.UserTypeStudent).Return(account, nil)

	var created *domain.Student
	ss.On("Put", mock.Anything, mock.AnythingOfType("*domain.Student")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Student)
		}).Return(nil)
	idp.On("GenerateSignInLink", mock.Anything, account).
		Return("http://localhost:5173/auth/callback?token=tok", nil)

	svc := newService(os, ss, nil, idp, nil)
	res, err := svc.VerifyOTP(context.Background(), studentVerifyReq())

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, account, res.Account)
	assert.Equal(t, "http://localhost:5173/auth/callback?token=tok", res.SignInLink)

	require.NotNil(t, created)
	assert.Equal(t, "acc1", created.AccountID)
	assert.Equal(t, "Jane", created.Name)
	assert.Equal(t, 8.7, created.CGPA)
	assert.True(t, created.Verified)

	require.Equal(t, domain.ProfileStudent, res.Profile.Kind)
	assert.Equal(t, created, res.Profile.Student)
}

func TestVerifyOTP_HappyPath_Recruiter(t *testing.T) {
	os := &mockOTPStore{}
	rs := &mockRecruiterStore{}
	idp := &mockIdentity{}

	account := &domain.Account{AccountID: "acc2", Email: "hr@acme.com", UserType: domain.UserTypeRecruiter}
	os.On("FindMatch", mock.Anything, "hr@acme.com", "654321", mock.Anything).
		Return(&domain.OTPVerification{OTPID: "otp2"}, nil)
	os.On("Consume", mock.Anything, "otp2").Return(nil)
	idp.On("CreateAccount", mock.Anything, "hr@acme.com", domain.UserTypeRecruiter).Return(account, nil)

	var created *domain.Recruiter
	rs.On("Put", mock.Anything, mock.AnythingOfType("*domain.Recruiter")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Recruiter)
		}).Return(nil)
	idp.On("GenerateSignInLink", mock.Anything, account).Return("http://link", nil)

	svc := newService(os, nil, rs, idp, nil)
	res, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{
		Email:    "hr@acme.com",
		OTP:      "654321",
		UserType: domain.UserTypeRecruiter,
		UserData: &UserData{Name: "Raj", Company: "Acme", Position: "HR Lead"},
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Acme", created.Company)
	assert.True(t, created.Verified)
	require.Equal(t, domain.ProfileRecruiter, res.Profile.Kind)
}

func TestVerifyOTP_NilUserData_CreatesEmptyProfile(t *testing.T) {
	os := &mockOTPStore{}
	rs := &mockRecruiterStore{}
	idp := &mockIdentity{}

	account := &domain.Account{AccountID: "acc3", Email: "hr@acme.com", UserType: domain.UserTypeRecruiter}
	os.On("FindMatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.OTPVerification{OTPID: "otp3"}, nil)
	os.On("Consume", mock.Anything, "otp3").Return(nil)
	idp.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything).Return(account, nil)
	rs.On("Put", mock.Anything, mock.AnythingOfType("*domain.Recruiter")).Return(nil)
	idp.On("GenerateSignInLink", mock.Anything, account).Return("http://link", nil)

	svc := newService(os, nil, rs, idp, nil)
	res, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{
		Email: "hr@acme.com", OTP: "111111", UserType: domain.UserTypeRecruiter,
	})

	require.NoError(t, err)
	require.Equal(t, domain.ProfileRecruiter, res.Profile.Kind)
	assert.Empty(t, res.Profile.Recruiter.Company)
}

func TestVerifyOTP_InvalidYearOfStudy_ProfileError(t *testing.T) {
	os := &mockOTPStore{}
	ss := &mockStudentStore{}
	idp := &mockIdentity{}

	account := &domain.Account{AccountID: "acc4", Email: "jane@vitstudent.ac.in", UserType: domain.UserTypeStudent}
	os.On("FindMatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.OTPVerification{OTPID: "otp4"}, nil)
	os.On("Consume", mock.Anything, "otp4").Return(nil)
	idp.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything).Return(account, nil)
	idp.On("DeleteAccount", mock.Anything, "acc4").Return(nil)

	req := studentVerifyReq()
	req.UserData.YearOfStudy = "5th"

	svc := newService(os, ss, nil, idp, nil)
	_, err := svc.VerifyOTP(context.Background(), req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProfileCreation))
	ss.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}
