package domain

// LeaderboardEntry is one ranked row of the student leaderboard.
// Ordering: CGPA desc, then badge count desc, then name asc.
type LeaderboardEntry struct {
	Rank        int      `json:"rank"`
	StudentID   string   `json:"student_id"`
	Name        string   `json:"name"`
	RegNumber   string   `json:"reg_number"`
	CGPA        float64  `json:"cgpa"`
	YearOfStudy string   `json:"year_of_study"`
	Skills      []string `json:"skills"`
	BadgeCount  int      `json:"badge_count"`
}
