package models

// Professor teaches courses. The storage key may be a caller-chosen business
// id (the demo data uses slugs like "prof_smith").
type Professor struct {
	ID         ProfessorID `json:"id"`
	FirstName  string      `json:"firstName"`
	LastName   string      `json:"lastName"`
	Department string      `json:"department"`
	Email      string      `json:"email"`
}

// DisplayName renders the professor's full name.
func (p Professor) DisplayName() string {
	return p.FirstName + " " + p.LastName
}
