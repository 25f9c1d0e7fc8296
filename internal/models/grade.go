package models

// GradePending marks a grade that has not been posted yet. Pending grades
// carry "N/A" as their date and are excluded from recent-grade feeds.
const GradePending = "Pending"

// Grade records an assessment result. Grade is free text ("A-", "Pending");
// Date is a date-only string or "N/A" while pending.
type Grade struct {
	ID         GradeID   `json:"id"`
	StudentID  StudentID `json:"studentId"`
	CourseID   CourseID  `json:"courseId"`
	Assignment string    `json:"assignment"`
	Grade      string    `json:"grade"`
	Date       string    `json:"date"`
	Feedback   string    `json:"feedback"`
}

// Posted reports whether the grade has an actual value.
func (g Grade) Posted() bool {
	return g.Grade != "" && g.Grade != GradePending
}
