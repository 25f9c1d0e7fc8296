package models

// Enrollment joins a student to a course. EnrollmentDate is a date-only
// string (YYYY-MM-DD), as the UI submits it.
type Enrollment struct {
	ID             EnrollmentID `json:"id"`
	StudentID      StudentID    `json:"studentId"`
	CourseID       CourseID     `json:"courseId"`
	EnrollmentDate string       `json:"enrollmentDate"`
}
