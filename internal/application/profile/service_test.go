package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vitern/vitern-api/internal/domain"
)

type mockAccountStore struct{ mock.Mock }

func (m *mockAccountStore) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockStudentStore struct{ mock.Mock }

func (m *mockStudentStore) GetByAccountID(ctx context.Context, accountID string) (*domain.Student, error) {
	args := m.Called(ctx, accountID)
	if s, _ := args.Get(0).(*domain.Student); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStudentStore) Update(ctx context.Context, studentID string, updates map[string]interface{}) error {
	return m.Called(ctx, studentID, updates).Error(0)
}

type mockRecruiterStore struct{ mock.Mock }

func (m *mockRecruiterStore) GetByAccountID(ctx context.Context, accountID string) (*domain.Recruiter, error) {
	args := m.Called(ctx, accountID)
	if r, _ := args.Get(0).(*domain.Recruiter); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockRecruiterStore) Update(ctx context.Context, recruiterID string, updates map[string]interface{}) error {
	return m.Called(ctx, recruiterID, updates).Error(0)
}

func TestResolve_StudentAccount_QueriesOnlyStudents(t *testing.T) {
	as := &mockAccountStore{}
	ss := &mockStudentStore{}
	rs := &mockRecruiterStore{}

	as.On("Get", mock.Anything, "acc1").Return(&domain.Account{
		AccountID: "acc1", UserType: domain.UserTypeStudent,
	}, nil)
	st := &domain.Student{StudentID: "st1", AccountID: "acc1"}
	ss.On("GetByAccountID", mock.Anything, "acc1").Return(st, nil)

	svc := NewService(as, ss, rs)
	p, err := svc.Resolve(context.Background(), "acc1")

	require.NoError(t, err)
	assert.Equal(t, domain.ProfileStudent, p.Kind)
	assert.Equal(t, st, p.Student)
	assert.Nil(t, p.Recruiter)
	rs.AssertNotCalled(t, "GetByAccountID", mock.Anything, mock.Anything)
}

func TestResolve_RecruiterAccount(t *testing.T) {
	as := &mockAccountStore{}
	ss := &mockStudentStore{}
	rs := &mockRecruiterStore{}

	as.On("Get", mock.Anything, "acc2").Return(&domain.Account{
		AccountID: "acc2", UserType: domain.UserTypeRecruiter,
	}, nil)
	rec := &domain.Recruiter{RecruiterID: "r1", AccountID: "acc2"}
	rs.On("GetByAccountID", mock.Anything, "acc2").Return(rec, nil)

	svc := NewService(as, ss, rs)
	p, err := svc.Resolve(context.Background(), "acc2")

	require.NoError(t, err)
	assert.Equal(t, domain.ProfileRecruiter, p.Kind)
	assert.Equal(t, rec, p.Recruiter)
	ss.AssertNotCalled(t, "GetByAccountID", mock.Anything, mock.Anything)
}

func TestResolve_MissingProfileRow_ResolvesNone(t *testing.T) {
	as := &mockAccountStore{}
	ss := &mockStudentStore{}

	as.On("Get", mock.Anything, "acc1").Return(&domain.Account{
		AccountID: "acc1", UserType: domain.UserTypeStudent,
	}, nil)
	ss.On("GetByAccountID", mock.Anything, "acc1").Return(nil, domain.ErrNotFound)

	svc := NewService(as, ss, &mockRecruiterStore{})
	p, err := svc.Resolve(context.Background(), "acc1")

	require.NoError(t, err)
	assert.Equal(t, domain.ProfileNone, p.Kind)
	assert.Nil(t, p.Student)
}

func TestResolve_UnknownAccount_Error(t *testing.T) {
	as := &mockAccountStore{}
	as.On("Get", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	svc := NewService(as, &mockStudentStore{}, &mockRecruiterStore{})
	_, err := svc.Resolve(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateStudent_InvalidYear_BadRequest(t *testing.T) {
	ss := &mockStudentStore{}
	ss.On("GetByAccountID", mock.Anything, "acc1").Return(&domain.Student{StudentID: "st1"}, nil)

	bad := "5th"
	svc := NewService(&mockAccountStore{}, ss, &mockRecruiterStore{})
	_, err := svc.UpdateStudent(context.Background(), "acc1", UpdateStudentRequest{YearOfStudy: &bad})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	ss.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStudent_BuildsSparseUpdateMap(t *testing.T) {
	ss := &mockStudentStore{}
	st := &domain.Student{StudentID: "st1", AccountID: "acc1"}
	ss.On("GetByAccountID", mock.Anything, "acc1").Return(st, nil)

	cgpa := 9.1
	skills := []string{"go", "aws"}
	ss.On("Update", mock.Anything, "st1", map[string]interface{}{
		"cgpa":   9.1,
		"skills": skills,
	}).Return(nil)

	svc := NewService(&mockAccountStore{}, ss, &mockRecruiterStore{})
	_, err := svc.UpdateStudent(context.Background(), "acc1", UpdateStudentRequest{
		CGPA: &cgpa, Skills: &skills,
	})

	require.NoError(t, err)
	ss.AssertExpectations(t)
}

func TestUpdateStudent_NoFields_NoWrite(t *testing.T) {
	ss := &mockStudentStore{}
	st := &domain.Student{StudentID: "st1"}
	ss.On("GetByAccountID", mock.Anything, "acc1").Return(st, nil)

	svc := NewService(&mockAccountStore{}, ss, &mockRecruiterStore{})
	got, err := svc.UpdateStudent(context.Background(), "acc1", UpdateStudentRequest{})

	require.NoError(t, err)
	assert.Equal(t, st, got)
	ss.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateRecruiter_HappyPath(t *testing.T) {
	rs := &mockRecruiterStore{}
	rec := &domain.Recruiter{RecruiterID: "r1", AccountID: "acc2"}
	rs.On("GetByAccountID", mock.Anything, "acc2").Return(rec, nil)

	company := "Acme"
	rs.On("Update", mock.Anything, "r1", map[string]interface{}{"company": "Acme"}).Return(nil)

	svc := NewService(&mockAccountStore{}, &mockStudentStore{}, rs)
	_, err := svc.UpdateRecruiter(context.Background(), "acc2", UpdateRecruiterRequest{Company: &company})

	require.NoError(t, err)
	rs.AssertExpectations(t)
}
