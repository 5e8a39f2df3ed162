package models

// TokenResponse carries a freshly issued JWT back to the client.
type TokenResponse struct {
	Token string `json:"token"`
}

// ReminderListResponse is the refreshed reminder list returned after every
// reminder mutation, ordered by reminder_at ascending.
type ReminderListResponse struct {
	Reminders []Reminder `json:"reminders"`

	// Length is the total number of entries in Reminders. Provided for
	// convenience so the client can validate the response without
	// iterating the slice.
	Length int `json:"length"`
}

// NoteListResponse is a page of the user's notes.
type NoteListResponse struct {
	Notes  []Note `json:"notes"`
	Length int    `json:"length"`
}

// PermissionResponse reports the stored notification permission status.
type PermissionResponse struct {
	Status PermissionStatus `json:"status"`
}

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
