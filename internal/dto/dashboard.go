package dto

import "github.com/campushub/campus-hub-api/internal/models"

// RecentGrade pairs a grade with its resolved course name for display.
type RecentGrade struct {
	models.Grade
	CourseName string `json:"courseName"`
}

// DashboardSummary aggregates the home page feeds. The two sections are
// fetched independently; a failed section carries its error message while the
// other still renders.
type DashboardSummary struct {
	RecentNotifications []models.Notification `json:"recentNotifications"`
	RecentGrades        []RecentGrade         `json:"recentGrades"`
	NotificationsError  string                `json:"notificationsError,omitempty"`
	GradesError         string                `json:"gradesError,omitempty"`
}
