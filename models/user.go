package models

import "time"

// PermissionStatus is the persisted state of a user's notification consent.
// It mirrors the three-way answer the mobile platform gives when asked about
// notification permission.
type PermissionStatus string

const (
	// PermissionUndetermined means the user has never been asked.
	PermissionUndetermined PermissionStatus = "undetermined"

	// PermissionGranted means the user allowed notifications.
	PermissionGranted PermissionStatus = "granted"

	// PermissionDenied means the user refused notifications.
	PermissionDenied PermissionStatus = "denied"
)

// Valid reports whether s is one of the three known statuses.
func (s PermissionStatus) Valid() bool {
	switch s {
	case PermissionUndetermined, PermissionGranted, PermissionDenied:
		return true
	}
	return false
}

// User represents a journal account. All notes and reminders hang off a user
// and every query is filtered by its ID.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// ProfileImage is a URL or local path to the user's avatar.
	ProfileImage string `json:"profile_image"`

	// Timezone is the user's preferred IANA zone name (e.g. "Asia/Jakarta").
	// Used as the default created_timezone for new notes.
	Timezone string `json:"timezone"`

	// NotifyPermission is the stored notification permission status.
	NotifyPermission PermissionStatus `json:"notify_permission"`

	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
