package models

// Storage keys are modelled as newtypes so a course key cannot silently stand
// in for a professor key. The underlying representation stays a plain string,
// matching what the document store assigns.
type (
	StudentID      string
	ProfessorID    string
	CourseID       string
	EnrollmentID   string
	GradeID        string
	NotificationID string
	EventID        string
)

func (id StudentID) String() string      { return string(id) }
func (id ProfessorID) String() string    { return string(id) }
func (id CourseID) String() string       { return string(id) }
func (id EnrollmentID) String() string   { return string(id) }
func (id GradeID) String() string        { return string(id) }
func (id NotificationID) String() string { return string(id) }
func (id EventID) String() string        { return string(id) }
