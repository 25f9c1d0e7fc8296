package models

// Student represents a learner registered in the institution. StudentNumber
// is the user-facing business key, distinct from the storage key in ID.
type Student struct {
	ID            StudentID `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	StudentNumber string    `json:"studentId"`
	Major         string    `json:"major"`
	DateOfBirth   string    `json:"dateOfBirth"`
	PhoneNumber   string    `json:"phoneNumber"`
	Address       string    `json:"address"`
}

// DisplayName renders the student's full name for messages and rosters.
func (s Student) DisplayName() string {
	return s.FirstName + " " + s.LastName
}
