package models

import "time"

// RegisterRequest is the body of POST /api/user/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Timezone string `json:"timezone,omitempty"`
}

// LoginRequest is the body of POST /api/user/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateNoteRequest is the body of POST /api/notes.
type CreateNoteRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImagePath   string   `json:"image_path"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Address     string   `json:"address,omitempty"`
}

// UpdateNoteRequest is the body of PUT /api/notes/{noteID}.
// Nil fields are left unchanged; CreatedAt is immutable and not accepted.
type UpdateNoteRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImagePath   *string  `json:"image_path,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Address     *string  `json:"address,omitempty"`
}

// UpdateStepsRequest is the body of PATCH /api/notes/{noteID}/steps.
type UpdateStepsRequest struct {
	StepCount int64 `json:"step_count"`
}

// AddReminderRequest is the body of POST /api/notes/{noteID}/reminders.
type AddReminderRequest struct {
	ReminderAt time.Time `json:"reminder_at"`
}

// NotificationTapRequest is the body of POST /api/notifications/tap:
// the payload a tapped notification deep-links back with.
type NotificationTapRequest struct {
	NoteID int64 `json:"note_id"`
}

// PermissionRequest is the body of PUT /api/user/notifications.
type PermissionRequest struct {
	Status PermissionStatus `json:"status"`
}
