package dto

import "github.com/campushub/campus-hub-api/internal/models"

// CourseDetail is the course page payload: the course itself, its professor
// when the reference resolves, and the currently enrolled students.
type CourseDetail struct {
	Course           models.Course     `json:"course"`
	Professor        *models.Professor `json:"professor,omitempty"`
	EnrolledStudents []models.Student  `json:"enrolledStudents"`
}
