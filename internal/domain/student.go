package domain

import "time"

// Year-of-study enum values, as displayed on the portal.
const (
	Year1st = "1st"
	Year2nd = "2nd"
	Year3rd = "3rd"
	Year4th = "4th"
)

// ValidYearOfStudy reports whether y is one of the four displayed years.
func ValidYearOfStudy(y string) bool {
	switch y {
	case Year1st, Year2nd, Year3rd, Year4th:
		return true
	}
	return false
}

// Project is one structured entry in a student's project list. Order is
// preserved as submitted.
type Project struct {
	Title       string `json:"title" dynamodbav:"title"`
	Description string `json:"description" dynamodbav:"description"`
	Link        string `json:"link,omitempty" dynamodbav:"link"`
}

// Student is the student profile variant.
// PK: student_id. GSI: account_id-index.
type Student struct {
	StudentID   string    `json:"id" dynamodbav:"student_id"`
	AccountID   string    `json:"account_id" dynamodbav:"account_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Email       string    `json:"email" dynamodbav:"email"`
	RegNumber   string    `json:"reg_number" dynamodbav:"reg_number"`
	Age         int       `json:"age" dynamodbav:"age"`
	CGPA        float64   `json:"cgpa" dynamodbav:"cgpa"` // 0–10 scale
	YearOfStudy string    `json:"year_of_study" dynamodbav:"year_of_study"`
	Skills      []string  `json:"skills" dynamodbav:"skills"`
	Projects    []Project `json:"projects" dynamodbav:"projects"`
	Experience  string    `json:"experience" dynamodbav:"experience"`
	Verified    bool      `json:"is_verified" dynamodbav:"is_verified"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}
