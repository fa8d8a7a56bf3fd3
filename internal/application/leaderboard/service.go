package leaderboard

import (
	"context"
	"sort"

	"github.com/vitern/vitern-api/internal/domain"
)

type StudentStore interface {
	Scan(ctx context.Context) ([]domain.Student, error)
}

type BadgeStore interface {
	CountByStudent(ctx context.Context) (map[string]int, error)
}

type Service interface {
	Get(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type service struct {
	students StudentStore
	badges   BadgeStore
}

func NewService(students StudentStore, badges BadgeStore) Service {
	return &service{students: students, badges: badges}
}

const defaultLimit = 50

// Get ranks verified students by CGPA desc, badge count desc, name asc.
// Ranks are dense: ties on all three keys still receive distinct sequential
// ranks in stable order.
func (s *service) Get(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	students, err := s.students.Scan(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.badges.CountByStudent(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(students))
	for _, st := range students {
		entries = append(entries, domain.LeaderboardEntry{
			StudentID:   st.StudentID,
			Name:        st.Name,
			RegNumber:   st.RegNumber,
			CGPA:        st.CGPA,
			YearOfStudy: st.YearOfStudy,
			Skills:      st.Skills,
			BadgeCount:  counts[st.StudentID],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CGPA != entries[j].CGPA {
			return entries[i].CGPA > entries[j].CGPA
		}
		if entries[i].BadgeCount != entries[j].BadgeCount {
			return entries[i].BadgeCount > entries[j].BadgeCount
		}
		return entries[i].Name < entries[j].Name
	})

	if limit <= 0 {
		limit = defaultLimit
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
