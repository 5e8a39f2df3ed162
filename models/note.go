package models

import "time"

// TitleMaxLength is the maximum number of characters allowed in a note title.
const TitleMaxLength = 20

// Note represents a single trip entry in the journal: a photo, a description,
// an optional location and the step count recorded during the activity.
type Note struct {
	// ID is the server-assigned identifier of the note.
	ID int64 `json:"id"`

	// UserID is the owning user. Every read and write is filtered by it.
	UserID int64 `json:"-"`

	// Title is a short caption, non-empty and at most TitleMaxLength characters.
	Title string `json:"title"`

	// Description is the free-form entry text, non-empty.
	Description string `json:"description"`

	// ImagePath references the locally copied photo, non-empty.
	ImagePath string `json:"image_path"`

	// Latitude and Longitude are optional but always set together.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	// Address is the display string derived from the coordinates.
	// Empty when no location is set or geocoding failed.
	Address string `json:"address,omitempty"`

	// StepCount is the non-negative step total recorded for this entry.
	StepCount int64 `json:"step_count"`

	// CreatedAt is set once at creation and never changes.
	CreatedAt time.Time `json:"created_at"`

	// CreatedTimezone is the IANA zone name captured at creation or at the
	// last location edit.
	CreatedTimezone string `json:"created_timezone"`
}

// HasLocation reports whether both coordinates are set.
func (n Note) HasLocation() bool {
	return n.Latitude != nil && n.Longitude != nil
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// NoteFilter narrows a note listing. Zero values mean "no constraint".
type NoteFilter struct {
	// Search matches a substring of the title, case-insensitive.
	Search string

	// HasLocation, when non-nil, keeps only notes with (true) or
	// without (false) coordinates.
	HasLocation *bool

	// Limit and Offset page the result. Limit 0 means no limit.
	Limit  uint64
	Offset uint64
}
