package service

import (
	"context"
	"time"

	"github.com/travelnote/travelnote/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type NoteService interface {
	CreateNote(ctx context.Context, session models.Session, request models.CreateNoteRequest) (models.Note, error)
	GetNote(ctx context.Context, session models.Session, noteID int64) (models.Note, error)
	ListNotes(ctx context.Context, session models.Session, filter models.NoteFilter) ([]models.Note, error)
	UpdateNote(ctx context.Context, session models.Session, noteID int64, request models.UpdateNoteRequest) (models.Note, error)
	UpdateSteps(ctx context.Context, session models.Session, noteID, stepCount int64) error
}

// ReminderService owns the reminder lifecycle: attaching reminders to notes,
// removing them, tearing a note down together with its reminders, and
// resolving a tapped notification back to its note. Every mutation returns
// the refreshed reminder list for the affected note so the caller always
// renders current state.
type ReminderService interface {
	AddReminder(ctx context.Context, session models.Session, noteID int64, reminderAt time.Time) ([]models.Reminder, error)
	RemoveReminder(ctx context.Context, session models.Session, reminderID int64) ([]models.Reminder, error)
	ListReminders(ctx context.Context, session models.Session, noteID int64) ([]models.Reminder, error)
	DeleteNote(ctx context.Context, session models.Session, noteID int64) error
	NotificationTapped(ctx context.Context, session models.Session, noteID int64) (models.Note, error)
}

// PermissionService exposes the stored notification permission to the
// settings surface.
type PermissionService interface {
	PermissionStatus(ctx context.Context, session models.Session) (models.PermissionStatus, error)
	SetPermission(ctx context.Context, session models.Session, status models.PermissionStatus) error
}
