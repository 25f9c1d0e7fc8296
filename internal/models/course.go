package models

// Course is a teachable unit. ProfessorID is a bare reference; existence of
// the professor is not enforced on write.
type Course struct {
	ID          CourseID    `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Credits     int         `json:"credits"`
	ProfessorID ProfessorID `json:"professorId"`
}
