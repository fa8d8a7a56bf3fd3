package leaderboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vitern/vitern-api/internal/domain"
)

type mockStudentStore struct{ mock.Mock }

func (m *mockStudentStore) Scan(ctx context.Context) ([]domain.Student, error) {
	args := m.Called(ctx)
	if l, _ := args.Get(0).([]domain.Student); l != nil {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBadgeStore struct{ mock.Mock }

func (m *mockBadgeStore) CountByStudent(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if c, _ := args.Get(0).(map[string]int); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestGet_OrdersByCGPAThenBadgesThenName(t *testing.T) {
	ss := &mockStudentStore{}
	bs := &mockBadgeStore{}

	ss.On("Scan", mock.Anything).Return([]domain.Student{
		{StudentID: "a", Name: "Asha", CGPA: 9.1},
		{StudentID: "b", Name: "Bala", CGPA: 9.4},
		{StudentID: "c", Name: "Charu", CGPA: 9.1},
		{StudentID: "d", Name: "Anu", CGPA: 9.1},
	}, nil)
	bs.On("CountByStudent", mock.Anything).Return(map[string]int{
		"a": 2,
		"c": 2,
		"d": 5,
	}, nil)

	svc := NewService(ss, bs)
	entries, err := svc.Get(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Bala leads on CGPA; Anu wins the 9.1 tie on badges; Asha beats Charu on name.
	assert.Equal(t, "b", entries[0].StudentID)
	assert.Equal(t, "d", entries[1].StudentID)
	assert.Equal(t, "a", entries[2].StudentID)
	assert.Equal(t, "c", entries[3].StudentID)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestGet_LimitTruncatesAfterSorting(t *testing.T) {
	ss := &mockStudentStore{}
	bs := &mockBadgeStore{}

	ss.On("Scan", mock.Anything).Return([]domain.Student{
		{StudentID: "low", Name: "Low", CGPA: 6.0},
		{StudentID: "high", Name: "High", CGPA: 9.9},
	}, nil)
	bs.On("CountByStudent", mock.Anything).Return(map[string]int{}, nil)

	svc := NewService(ss, bs)
	entries, err := svc.Get(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "high", entries[0].StudentID)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestGet_NoBadges_CountsZero(t *testing.T) {
	ss := &mockStudentStore{}
	bs := &mockBadgeStore{}

	ss.On("Scan", mock.Anything).Return([]domain.Student{
		{StudentID: "a", Name: "Asha", CGPA: 8.0},
	}, nil)
	bs.On("CountByStudent", mock.Anything).Return(map[string]int{}, nil)

	svc := NewService(ss, bs)
	entries, err := svc.Get(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].BadgeCount)
}
