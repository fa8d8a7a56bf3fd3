package domain

import "time"

// Resume is a generated PDF stored in the object store.
// PK: resume_id. GSI: student_id-index.
type Resume struct {
	ResumeID  string    `json:"id" dynamodbav:"resume_id"`
	StudentID string    `json:"student_id" dynamodbav:"student_id"`
	ObjectKey string    `json:"-" dynamodbav:"object_key"`
	URL       string    `json:"url" dynamodbav:"url"`
	SizeBytes int64     `json:"size_bytes" dynamodbav:"size_bytes"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
