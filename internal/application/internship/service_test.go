package internship

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

type mockInternshipStore struct{ mock.Mock }

func (m *mockInternshipStore) Put(ctx context.Context, i *domain.Internship) error {
	return m.Called(ctx, i).Error(0)
}
func (m *mockInternshipStore) Get(ctx context.Context, internshipID string) (*domain.Internship, error) {
	args := m.Called(ctx, internshipID)
	if i, _ := args.Get(0).(*domain.Internship); i != nil {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockInternshipStore) Update(ctx context.Context, internshipID string, updates map[string]interface{}) error {
	return m.Called(ctx, internshipID, updates).Error(0)
}
func (m *mockInternshipStore) ListByStatus(ctx context.Context, status string) ([]domain.Internship, error) {
	args := m.Called(ctx, status)
	if l, _ := args.Get(0).([]domain.Internship); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockInternshipStore) ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.Internship, error) {
	args := m.Called(ctx, recruiterID)
	if l, _ := args.Get(0).([]domain.Internship); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockApplicationStore struct{ mock.Mock }

func (m *mockApplicationStore) Put(ctx context.Context, a *domain.InternshipApplication) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockApplicationStore) Get(ctx context.Context, applicationID string) (*domain.InternshipApplication, error) {
	args := m.Called(ctx, applicationID)
	if a, _ := args.Get(0).(*domain.InternshipApplication); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockApplicationStore) UpdateStatus(ctx context.Context, applicationID, status string) error {
	return m.Called(ctx, applicationID, status).Error(0)
}
func (m *mockApplicationStore) ListByInternship(ctx context.Context, internshipID string) ([]domain.InternshipApplication, error) {
	args := m.Called(ctx, internshipID)
	if l, _ := args.Get(0).([]domain.InternshipApplication); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockApplicationStore) ListByStudent(ctx context.Context, studentID string) ([]domain.InternshipApplication, error) {
	args := m.Called(ctx, studentID)
	if l, _ := args.Get(0).([]domain.InternshipApplication); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockApplicationStore) GetByInternshipAndStudent(ctx context.Context, internshipID, studentID string) (*domain.InternshipApplication, error) {
	args := m.Called(ctx, internshipID, studentID)
	if a, _ := args.Get(0).(*domain.InternshipApplication); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockStudentStore struct{ mock.Mock }

func (m *mockStudentStore) Get(ctx context.Context, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	if s, _ := args.Get(0).(*domain.Student); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRecruiterStore struct{ mock.Mock }

func (m *mockRecruiterStore) Get(ctx context.Context, recruiterID string) (*domain.Recruiter, error) {
	args := m.Called(ctx, recruiterID)
	if r, _ := args.Get(0).(*domain.Recruiter); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, accountID, kind, message string) error {
	return m.Called(ctx, accountID, kind, message).Error(0)
}

func newService(is *mockInternshipStore, as *mockApplicationStore, ss *mockStudentStore, rs *mockRecruiterStore, n *mockNotifier) Service {
	deps := ServiceDeps{
		InternshipRepo:  is,
		ApplicationRepo: as,
		StudentRepo:     ss,
		RecruiterRepo:   rs,
	}
	if n != nil {
		deps.Notifier = n
	}
	return NewService(deps)
}

func openInternship() *domain.Internship {
	deadline := time.Now().Add(48 * time.Hour)
	return &domain.Internship{
		InternshipID:        "in1",
		RecruiterID:         "r1",
		Title:               "Backend Intern",
		Status:              domain.InternshipOpen,
		MinCGPA:             8.0,
		ApplicationDeadline: &deadline,
	}
}

// --- Create / Update ---

func TestCreate_DefaultsToOpen(t *testing.T) {
	is := &mockInternshipStore{}

	var stored *domain.Internship
	is.On("Put", mock.Anything, mock.AnythingOfType("*domain.Internship")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Internship)
		}).Return(nil)

	svc := newService(is, nil, nil, nil, nil)
	in, err := svc.Create(context.Background(), "r1", CreateRequest{
		Title: "Backend Intern", Company: "Acme", MinCGPA: 7.5,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InternshipOpen, stored.Status)
	assert.Equal(t, "r1", stored.RecruiterID)
	assert.Equal(t, in, stored)
}

func TestUpdate_OtherRecruiter_Forbidden(t *testing.T) {
	is := &mockInternshipStore{}
	is.On("Get", mock.Anything, "in1").Return(openInternship(), nil)

	svc := newService(is, nil, nil, nil, nil)
	title := "New Title"
	_, err := svc.Update(context.Background(), "r2", "in1", UpdateRequest{Title: &title})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestUpdate_InvalidStatus_BadRequest(t *testing.T) {
	is := &mockInternshipStore{}
	is.On("Get", mock.Anything, "in1").Return(openInternship(), nil)

	svc := newService(is, nil, nil, nil, nil)
	bad := "archived"
	_, err := svc.Update(context.Background(), "r1", "in1", UpdateRequest{Status: &bad})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- Apply gating ---

func TestApply_ClosedInternship_Conflict(t *testing.T) {
	is := &mockInternshipStore{}
	in := openInternship()
	in.Status = domain.InternshipClosed
	is.On("Get", mock.Anything, "in1").Return(in, nil)

	svc := newService(is, nil, nil, nil, nil)
	_, err := svc.Apply(context.Background(), "st1", "in1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestApply_DeadlinePassed_Conflict(t *testing.T) {
	is := &mockInternshipStore{}
	in := openInternship()
	past := time.Now().Add(-time.Hour)
	in.ApplicationDeadline = &past
	is.On("Get", mock.Anything, "in1").Return(in, nil)

	svc := newService(is, nil, nil, nil, nil)
	_, err := svc.Apply(context.Background(), "st1", "in1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestApply_CGPABelowMinimum_Forbidden(t *testing.T) {
	is := &mockInternshipStore{}
	ss := &mockStudentStore{}
	is.On("Get", mock.Anything, "in1").Return(openInternship(), nil)
	ss.On("Get", mock.Anything, "st1").Return(&domain.Student{StudentID: "st1", CGPA: 7.2}, nil)

	svc := newService(is, nil, ss, nil, nil)
	_, err := svc.Apply(context.Background(), "st1", "in1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestApply_Duplicate_Conflict(t *testing.T) {
	is := &mockInternshipStore{}
	as := &mockApplicationStore{}
	ss := &mockStudentStore{}
	is.On("Get", mock.Anything, "in1").Return(openInternship(), nil)
	ss.On("Get", mock.Anything, "st1").Return(&domain.Student{StudentID: "st1", CGPA: 9.0}, nil)
	as.On("GetByInternshipAndStudent", mock.Anything, "in1", "st1").
		Return(&domain.InternshipApplication{ApplicationID: "app0"}, nil)

	svc := newService(is, as, ss, nil, nil)
	_, err := svc.Apply(context.Background(), "st1", "in1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	as.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestApply_HappyPath_NotifiesRecruiter(t *testing.T) {
	is := &mockInternshipStore{}
	as := &mockApplicationStore{}
	ss := &mockStudentStore{}
	rs := &mockRecruiterStore{}
	n := &mockNotifier{}

	is.On("Get", mock.Anything, "in1").Return(openInternship(), nil)
	ss.On("Get", mock.Anything, "st1").Return(&domain.Student{StudentID: "st1", Name: "Jane", CGPA: 9.0}, nil)
	as.On("GetByInternshipAndStudent", mock.Anything, "in1", "st1").Return(nil, domain.ErrNotFound)
	as.On("Put", mock.Anything, mock.AnythingOfType("*domain.InternshipApplication")).Return(nil)
	rs.On("Get", mock.Anything, "r1").Return(&domain.Recruiter{RecruiterID: "r1", AccountID: "acc-r1"}, nil)
	n.On("Notify", mock.Anything, "acc-r1", domain.NotifApplicationSubmitted, mock.Anything).Return(nil)

	svc := newService(is, as, ss, rs, n)
	app, err := svc.Apply(context.Background(), "st1", "in1")

	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, app.Status)
	assert.Equal(t, "in1", app.InternshipID)
	n.AssertExpectations(t)
}

func TestApply_NoDeadline_Allowed(t *testing.T) {
	is := &mockInternshipStore{}
	as := &mockApplicationStore{}
	ss := &mockStudentStore{}
	rs := &mockRecruiterStore{}

	in := openInternship()
	in.ApplicationDeadline = nil
	is.On("Get", mock.Anything, "in1").Return(in, nil)
	ss.On("Get", mock.Anything, "st1").Return(&domain.Student{StudentID: "st1", CGPA: 9.0}, nil)
	as.On("GetByInternshipAndStudent", mock.Anything, "in1", "st1").Return(nil, domain.ErrNotFound)
	as.On("Put", mock.Anything, mock.Anything).Return(nil)
	rs.On("Get", mock.Anything, "r1").Return(&domain.Recruiter{AccountID: "acc-r1"}, nil)

	svc := newService(is, as, ss, rs, nil)
	_, err := svc.Apply(context.Background(), "st1", "in1")
	require.NoError(t, err)
}

// --- Decide ---

func TestDecide_InvalidStatus_BadRequest(t *testing.T) {
	svc := newService(nil, nil, nil, nil, nil)
	_, err := svc.Decide(context.Background(), "r1", "app1", "pending")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestDecide_OtherRecruiter_Forbidden(t *testing.T) {
	is := &mockInternshipStore{}
	as := &mockApplicationStore{}
	as.On("Get", mock.Anything, "app1").Return(&domain.InternshipApplication{
		ApplicationID: "app1", InternshipID: "in1", Status: domain.ApplicationPending,
	}, nil)
	is.On("Get", mock.Anything, "in1").Return(openInternship(), nil)

	svc := newService(is, as, nil, nil, nil)
	_, err := svc.Decide(context.Background(), "r2", "app1", domain.ApplicationAccepted)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestDecide_AlreadyDecided_Conflict(t *testing.T) {
	is := &mockInternshipStore{}
	as := &mockApplicationStore{}
	as.On("Get", mock.Anything, "app1").Return(&domain.InternshipApplication{
		ApplicationID: "app1", InternshipID: "in1", Status: domain.ApplicationRejected,
	}, nil)
	is.On("Get", mock.Anything, "in1").Return(openInternship(), nil)

	svc := newService(is, as, nil, nil, nil)
	_, err := svc.Decide(context.Background(), "r1", "app1", domain.ApplicationAccepted)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestDecide_HappyPath_NotifiesStudent(t *testing.T) {
	is := &mockInternshipStore{}
	as := &mockApplicationStore{}
	ss := &mockStudentStore{}
	n := &mockNotifier{}

	as.On("Get", mock.Anything, "app1").Return(&domain.InternshipApplication{
		ApplicationID: "app1", InternshipID: "in1", StudentID: "st1", Status: domain.ApplicationPending,
	}, nil)
	is.On("Get", mock.Anything, "in1").Return(openInternship(), nil)
	as.On("UpdateStatus", mock.Anything, "app1", domain.ApplicationAccepted).Return(nil)
	ss.On("Get", mock.Anything, "st1").Return(&domain.Student{StudentID: "st1", AccountID: "acc-st1"}, nil)
	n.On("Notify", mock.Anything, "acc-st1", domain.NotifApplicationDecided, mock.Anything).Return(nil)

	svc := newService(is, as, ss, nil, n)
	app, err := svc.Decide(context.Background(), "r1", "app1", domain.ApplicationAccepted)

	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationAccepted, app.Status)
	n.AssertExpectations(t)
}

// --- Listing ---

func TestListApplications_OtherRecruiter_Forbidden(t *testing.T) {
	is := &mockInternshipStore{}
	is.On("Get", mock.Anything, "in1").Return(openInternship(), nil)

	svc := newService(is, nil, nil, nil, nil)
	_, err := svc.ListApplications(context.Background(), "r2", "in1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestListOpen_QueriesOpenStatus(t *testing.T) {
	is := &mockInternshipStore{}
	is.On("ListByStatus", mock.Anything, domain.InternshipOpen).
		Return([]domain.Internship{*openInternship()}, nil)

	svc := newService(is, nil, nil, nil, nil)
	list, err := svc.ListOpen(context.Background())

	require.NoError(t, err)
	assert.Len(t, list, 1)
	is.AssertExpectations(t)
}
