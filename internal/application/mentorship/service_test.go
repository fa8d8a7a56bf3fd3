package mentorship

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vitern/vitern-api/internal/domain"
)

type mockMentorshipStore struct{ mock.Mock }

func (m *mockMentorshipStore) Put(ctx context.Context, ms *domain.Mentorship) error {
	return m.Called(ctx, ms).Error(0)
}
func (m *mockMentorshipStore) Get(ctx context.Context, mentorshipID string) (*domain.Mentorship, error) {
	args := m.Called(ctx, mentorshipID)
	if ms, _ := args.Get(0).(*domain.Mentorship); ms != nil {
		return ms, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMentorshipStore) UpdateStatus(ctx context.Context, mentorshipID, status string) error {
	return m.Called(ctx, mentorshipID, status).Error(0)
}
func (m *mockMentorshipStore) ListByMentor(ctx context.Context, mentorID string) ([]domain.Mentorship, error) {
	args := m.Called(ctx, mentorID)
	if l, _ := args.Get(0).([]domain.Mentorship); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMentorshipStore) ListByMentee(ctx context.Context, menteeID string) ([]domain.Mentorship, error) {
	args := m.Called(ctx, menteeID)
	if l, _ := args.Get(0).([]domain.Mentorship); l != nil {
		return l, args.Error(1)
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

func TestRequest_SelfMentorship_BadRequest(t *testing.T) {
	svc := NewService(&mockMentorshipStore{}, &mockStudentStore{}, nil)
	_, err := svc.Request(context.Background(), "st1", RequestMentorshipRequest{MentorID: "st1", Topic: "go"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestRequest_ExistingLivePair_Conflict(t *testing.T) {
	ms := &mockMentorshipStore{}
	ss := &mockStudentStore{}
	ss.On("Get", mock.Anything, "st2").Return(&domain.Student{StudentID: "st2", AccountID: "acc2"}, nil)
	ms.On("ListByMentee", mock.Anything, "st1").Return([]domain.Mentorship{
		{MentorID: "st2", MenteeID: "st1", Status: domain.MentorshipActive},
	}, nil)

	svc := NewService(ms, ss, nil)
	_, err := svc.Request(context.Background(), "st1", RequestMentorshipRequest{MentorID: "st2", Topic: "go"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestRequest_DeclinedPair_Allowed(t *testing.T) {
	ms := &mockMentorshipStore{}
	ss := &mockStudentStore{}
	ss.On("Get", mock.Anything, "st2").Return(&domain.Student{StudentID: "st2", AccountID: "acc2"}, nil)
	ms.On("ListByMentee", mock.Anything, "st1").Return([]domain.Mentorship{
		{MentorID: "st2", MenteeID: "st1", Status: domain.MentorshipDeclined},
	}, nil)
	ms.On("Put", mock.Anything, mock.AnythingOfType("*domain.Mentorship")).Return(nil)

	svc := NewService(ms, ss, nil)
	m, err := svc.Request(context.Background(), "st1", RequestMentorshipRequest{MentorID: "st2", Topic: "go"})

	require.NoError(t, err)
	assert.Equal(t, domain.MentorshipPending, m.Status)
}

func TestDecide_OnlyMentor(t *testing.T) {
	ms := &mockMentorshipStore{}
	ms.On("Get", mock.Anything, "m1").Return(&domain.Mentorship{
		MentorshipID: "m1", MentorID: "st2", Status: domain.MentorshipPending,
	}, nil)

	svc := NewService(ms, &mockStudentStore{}, nil)
	_, err := svc.Decide(context.Background(), "st3", "m1", domain.MentorshipActive)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestDecide_InvalidTarget_BadRequest(t *testing.T) {
	svc := NewService(&mockMentorshipStore{}, &mockStudentStore{}, nil)
	_, err := svc.Decide(context.Background(), "st2", "m1", domain.MentorshipCompleted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestComplete_RequiresActive(t *testing.T) {
	ms := &mockMentorshipStore{}
	ms.On("Get", mock.Anything, "m1").Return(&domain.Mentorship{
		MentorshipID: "m1", MentorID: "st2", Status: domain.MentorshipPending,
	}, nil)

	svc := NewService(ms, &mockStudentStore{}, nil)
	_, err := svc.Complete(context.Background(), "st2", "m1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestComplete_HappyPath(t *testing.T) {
	ms := &mockMentorshipStore{}
	ms.On("Get", mock.Anything, "m1").Return(&domain.Mentorship{
		MentorshipID: "m1", MentorID: "st2", Status: domain.MentorshipActive,
	}, nil)
	ms.On("UpdateStatus", mock.Anything, "m1", domain.MentorshipCompleted).Return(nil)

	svc := NewService(ms, &mockStudentStore{}, nil)
	m, err := svc.Complete(context.Background(), "st2", "m1")

	require.NoError(t, err)
	assert.Equal(t, domain.MentorshipCompleted, m.Status)
}
