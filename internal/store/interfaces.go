package store

import (
	"context"
	"time"

	"github.com/travelnote/travelnote/models"
)

// UserRepository provides access to the users table.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateNotifyPermission(ctx context.Context, userID int64, status models.PermissionStatus) error
}

// NoteRepository provides access to the notes table. Every method that reads
// or mutates a note filters by the owning user's ID.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNote(ctx context.Context, noteID, userID int64) (models.Note, error)
	GetNoteByID(ctx context.Context, noteID int64) (models.Note, error)
	ListNotes(ctx context.Context, userID int64, filter models.NoteFilter) ([]models.Note, error)
	UpdateNote(ctx context.Context, note models.Note) error
	UpdateStepCount(ctx context.Context, noteID, userID, steps int64) error
	DeleteNoteWithReminders(ctx context.Context, noteID, userID int64) error
}

// ReminderRepository provides access to the reminders table. Ownership is
// note-level: reads join through the owning note's user_id, deletes are
// issued only after the caller has resolved the reminder through such a read.
type ReminderRepository interface {
	SaveReminder(ctx context.Context, reminder models.Reminder) (models.Reminder, error)
	GetReminder(ctx context.Context, reminderID, userID int64) (models.Reminder, error)
	ListByNote(ctx context.Context, noteID int64) ([]models.Reminder, error)
	ListPending(ctx context.Context, after time.Time) ([]models.Reminder, error)
	DeleteReminder(ctx context.Context, reminderID int64) error
	DeleteByNote(ctx context.Context, noteID int64) error
	UpdateNotificationID(ctx context.Context, reminderID int64, notificationID *string) error
}
