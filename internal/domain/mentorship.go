package domain

import "time"

// Mentorship request states.
const (
	MentorshipPending   = "pending"
	MentorshipActive    = "active"
	MentorshipDeclined  = "declined"
	MentorshipCompleted = "completed"
)

// ValidMentorshipStatus reports whether s is a known mentorship state.
func ValidMentorshipStatus(s string) bool {
	switch s {
	case MentorshipPending, MentorshipActive, MentorshipDeclined, MentorshipCompleted:
		return true
	}
	return false
}

// Mentorship pairs two students on a topic. MentorID and MenteeID are both
// student IDs; a student cannot mentor themselves.
// PK: mentorship_id. GSIs: mentor_id-index, mentee_id-index.
type Mentorship struct {
	MentorshipID string    `json:"id" dynamodbav:"mentorship_id"`
	MentorID     string    `json:"mentor_id" dynamodbav:"mentor_id"`
	MenteeID     string    `json:"mentee_id" dynamodbav:"mentee_id"`
	Topic        string    `json:"topic" dynamodbav:"topic"`
	Status       string    `json:"status" dynamodbav:"status"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}
