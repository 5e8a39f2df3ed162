package models

import "time"

// Reminder is a scheduled future alert tied to one note. Reminders are never
// edited in place: changing a time is modeled as remove + add.
type Reminder struct {
	// ID is the server-assigned identifier of the reminder.
	ID int64 `json:"id"`

	// NoteID is the owning note. A note can carry any number of reminders.
	NoteID int64 `json:"note_id"`

	// ReminderAt is the instant the alert should fire. Strictly in the
	// future at creation time.
	ReminderAt time.Time `json:"reminder_at"`

	// CreatedAt is the row creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// NotificationID is the opaque handle returned by the notification
	// scheduler. Nil when scheduling failed: the reminder is still recorded
	// so the user's list stays accurate, but no alert will fire.
	NotificationID *string `json:"notification_id,omitempty"`
}

// Scheduled reports whether a live notification backs this reminder.
func (r Reminder) Scheduled() bool {
	return r.NotificationID != nil && *r.NotificationID != ""
}

// TableName returns the name of the database table
// associated with the Reminder model.
func (r Reminder) TableName() string {
	return "reminders"
}
