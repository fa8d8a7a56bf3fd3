package domain

import "time"

// Badge types awardable to students.
const (
	BadgeInternshipStar = "internship_star"
	BadgeMentorStar     = "mentor_star"
	BadgeCodingChamp    = "coding_champ"
	BadgeTopPerformer   = "top_performer"
)

// ValidBadgeType reports whether t is a known badge type.
func ValidBadgeType(t string) bool {
	switch t {
	case BadgeInternshipStar, BadgeMentorStar, BadgeCodingChamp, BadgeTopPerformer:
		return true
	}
	return false
}

// Badge is an award pinned to a student, counted by the leaderboard.
// PK: badge_id. GSI: student_id-index.
type Badge struct {
	BadgeID     string    `json:"id" dynamodbav:"badge_id"`
	StudentID   string    `json:"student_id" dynamodbav:"student_id"`
	BadgeType   string    `json:"badge_type" dynamodbav:"badge_type"`
	Title       string    `json:"title" dynamodbav:"title"`
	Description string    `json:"description,omitempty" dynamodbav:"description"`
	AwardedBy   string    `json:"awarded_by,omitempty" dynamodbav:"awarded_by"` // recruiter_id
	AwardedAt   time.Time `json:"awarded_at" dynamodbav:"awarded_at"`
}
