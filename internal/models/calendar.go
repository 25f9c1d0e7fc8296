package models

import "time"

// EventType classifies a calendar event.
type EventType string

const (
	EventClass EventType = "class"
	EventTest  EventType = "test"
	EventOther EventType = "other"
)

// CalendarEvent is a personal schedule entry.
type CalendarEvent struct {
	ID          EventID   `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Type        EventType `json:"type"`
	Description string    `json:"description"`
}
