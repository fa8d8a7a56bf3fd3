package domain

import "time"

// Internship lifecycle states.
const (
	InternshipOpen   = "open"
	InternshipClosed = "closed"
	InternshipFilled = "filled"
)

// ValidInternshipStatus reports whether s is a known internship state.
func ValidInternshipStatus(s string) bool {
	switch s {
	case InternshipOpen, InternshipClosed, InternshipFilled:
		return true
	}
	return false
}

// Internship is a posting owned by a recruiter.
// PK: internship_id. GSIs: recruiter_id-index, status-index.
type Internship struct {
	InternshipID        string     `json:"id" dynamodbav:"internship_id"`
	RecruiterID         string     `json:"recruiter_id" dynamodbav:"recruiter_id"`
	Title               string     `json:"title" dynamodbav:"title"`
	Company             string     `json:"company" dynamodbav:"company"`
	Description         string     `json:"description" dynamodbav:"description"`
	Location            string     `json:"location,omitempty" dynamodbav:"location"`
	Duration            string     `json:"duration,omitempty" dynamodbav:"duration"`
	Stipend             string     `json:"stipend,omitempty" dynamodbav:"stipend"`
	MinCGPA             float64    `json:"min_cgpa" dynamodbav:"min_cgpa"`
	RequiredSkills      []string   `json:"required_skills" dynamodbav:"required_skills"`
	Status              string     `json:"status" dynamodbav:"status"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty" dynamodbav:"application_deadline"`
	CreatedAt           time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt           time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// Application decision states.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// ValidApplicationStatus reports whether s is a known application state.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// InternshipApplication links a student to an internship.
// PK: application_id. GSIs: internship_id-index, student_id-index.
type InternshipApplication struct {
	ApplicationID string    `json:"id" dynamodbav:"application_id"`
	InternshipID  string    `json:"internship_id" dynamodbav:"internship_id"`
	StudentID     string    `json:"student_id" dynamodbav:"student_id"`
	Status        string    `json:"status" dynamodbav:"status"`
	AppliedAt     time.Time `json:"applied_at" dynamodbav:"applied_at"`
}
