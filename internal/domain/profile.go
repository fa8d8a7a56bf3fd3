package domain

// ProfileKind tags the resolved profile variant.
type ProfileKind string

const (
	ProfileStudent   ProfileKind = "student"
	ProfileRecruiter ProfileKind = "recruiter"
	ProfileNone      ProfileKind = "none"
)

// Profile is the tagged union over the two profile variants. Exactly one of
// Student/Recruiter is set when Kind is not ProfileNone. Resolution is driven
// by the account's user_type with a single keyed query — never by trying one
// table and falling back to the other.
type Profile struct {
	Kind      ProfileKind `json:"kind"`
	Student   *Student    `json:"student,omitempty"`
	Recruiter *Recruiter  `json:"recruiter,omitempty"`
}
