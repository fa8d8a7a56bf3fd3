package domain

import "time"

// Notification event kinds surfaced on the dashboards.
const (
	NotifApplicationSubmitted = "application_submitted"
	NotifApplicationDecided   = "application_decided"
	NotifBadgeAwarded         = "badge_awarded"
	NotifMentorshipRequested  = "mentorship_requested"
	NotifMentorshipDecided    = "mentorship_decided"
)

// Notification is one in-app notification row.
// PK: notification_id. GSI: account_id-created_at-index.
type Notification struct {
	NotificationID string    `json:"id" dynamodbav:"notification_id"`
	AccountID      string    `json:"account_id" dynamodbav:"account_id"`
	Kind           string    `json:"kind" dynamodbav:"kind"`
	Message        string    `json:"message" dynamodbav:"message"`
	Read           bool      `json:"read" dynamodbav:"read"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}
