package domain

import "time"

// ChatRoom is a topic-based mentorship discussion room created by a student.
// PK: room_id.
type ChatRoom struct {
	RoomID      string    `json:"id" dynamodbav:"room_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Topic       string    `json:"topic" dynamodbav:"topic"`
	Description string    `json:"description,omitempty" dynamodbav:"description"`
	CreatedBy   string    `json:"created_by" dynamodbav:"created_by"` // student_id
	IsActive    bool      `json:"is_active" dynamodbav:"is_active"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
}

// ChatMessage is one message inside a room.
// PK: message_id. GSI: room_id-created_at-index.
type ChatMessage struct {
	MessageID string    `json:"id" dynamodbav:"message_id"`
	RoomID    string    `json:"room_id" dynamodbav:"room_id"`
	SenderID  string    `json:"sender_id" dynamodbav:"sender_id"` // account_id
	Message   string    `json:"message" dynamodbav:"message"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
