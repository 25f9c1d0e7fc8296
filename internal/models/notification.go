package models

import "time"

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationGradeUpdate  NotificationType = "grade_update"
	NotificationAnnouncement NotificationType = "announcement"
	NotificationInfo         NotificationType = "info"
	NotificationMessage      NotificationType = "message"
)

// Notification is a message surfaced to the user. GradeID and StudentID are
// optional correlation fields set when the notification was emitted by a
// grade write.
type Notification struct {
	ID        NotificationID   `json:"id"`
	Sender    string           `json:"sender"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
	GradeID   *GradeID         `json:"gradeId,omitempty"`
	StudentID *StudentID       `json:"studentId,omitempty"`
}
