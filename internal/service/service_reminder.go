package service

import (
	"context"
	"fmt"
	"time"

	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/internal/notify"
	"github.com/travelnote/travelnote/internal/store"
	"github.com/travelnote/travelnote/models"
)

// reminderService is the concrete implementation of ReminderService.
//
// Mutations on one note's reminders are serialized through a per-note lock:
// two concurrent AddReminder calls for the same instant must collapse to a
// single row, and the duplicate check plus insert is not atomic on its own.
type reminderService struct {
	reminderRepository store.ReminderRepository
	noteRepository     store.NoteRepository
	scheduler          notify.Scheduler
	permissionGate     notify.PermissionGate

	locks  *noteLocks
	logger *logger.Logger
}

// NewReminderService constructs a ReminderService wired to the given
// repositories, scheduler, and permission gate.
func NewReminderService(reminderRepository store.ReminderRepository, noteRepository store.NoteRepository, scheduler notify.Scheduler, permissionGate notify.PermissionGate, logger *logger.Logger) ReminderService {
	return &reminderService{
		reminderRepository: reminderRepository,
		noteRepository:     noteRepository,
		scheduler:          scheduler,
		permissionGate:     permissionGate,
		locks:              newNoteLocks(),
		logger:             logger,
	}
}

// AddReminder attaches a reminder to a note and returns the note's refreshed
// reminder list.
//
// The flow, in order:
//  1. The instant must lie strictly in the future, and the note must exist
//     and belong to the session user.
//  2. Notification permission is requested through the gate; anything short
//     of granted stops the operation with ErrPermissionDenied.
//  3. Under the per-note lock, an existing reminder at exactly the same
//     instant makes the call a no-op returning the current list.
//  4. The notification is scheduled first, then the row is inserted. A
//     scheduling failure is not fatal: the reminder is stored with a nil
//     notification handle so the user's list stays truthful, it just won't
//     fire. An insert failure after a successful schedule cancels the
//     now-orphaned notification.
func (r *reminderService) AddReminder(ctx context.Context, session models.Session, noteID int64, reminderAt time.Time) ([]models.Reminder, error) {
	log := logger.FromContext(ctx)

	if !reminderAt.After(time.Now()) {
		log.Error().
			Int64("note_id", noteID).
			Time("reminder_at", reminderAt).
			Msg("reminder instant is not in the future")
		return nil, ErrInvalidDataProvided
	}

	note, err := r.noteRepository.GetNote(ctx, noteID, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("note lookup failed: %w", err)
	}

	status, err := r.permissionGate.Request(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("permission request failed: %w", err)
	}
	if status != models.PermissionGranted {
		log.Warn().
			Int64("user_id", session.UserID).
			Int64("note_id", noteID).
			Str("status", string(status)).
			Msg("reminder rejected: notification permission not granted")
		return nil, ErrPermissionDenied
	}

	unlock := r.locks.lock(noteID)
	defer unlock()

	existing, err := r.reminderRepository.ListByNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("reminder listing failed: %w", err)
	}

	for _, reminder := range existing {
		if reminder.ReminderAt.Equal(reminderAt) {
			log.Debug().
				Int64("note_id", noteID).
				Time("reminder_at", reminderAt).
				Msg("duplicate reminder instant, returning current list")
			return existing, nil
		}
	}

	var notificationID *string
	handle, schedErr := r.scheduler.Schedule(ctx, reminderAt, notify.Alert{
		NoteID: noteID,
		Title:  "Reminder: " + note.Title,
		Body:   note.Description,
	})
	if schedErr != nil {
		log.Warn().
			Err(schedErr).
			Int64("note_id", noteID).
			Time("reminder_at", reminderAt).
			Msg("scheduling failed, storing reminder without notification")
	} else {
		notificationID = &handle
	}

	saved, err := r.reminderRepository.SaveReminder(ctx, models.Reminder{
		NoteID:         noteID,
		ReminderAt:     reminderAt,
		NotificationID: notificationID,
	})
	if err != nil {
		if notificationID != nil {
			r.cancelQuietly(ctx, *notificationID)
		}
		log.Err(err).Int64("note_id", noteID).Msg("reminder creation ended with error")
		return nil, fmt.Errorf("reminder creation ended with error: %w", err)
	}

	log.Info().
		Int64("reminder_id", saved.ID).
		Int64("note_id", noteID).
		Time("reminder_at", reminderAt).
		Bool("scheduled", saved.Scheduled()).
		Msg("reminder added")

	return r.reminderRepository.ListByNote(ctx, noteID)
}

// RemoveReminder deletes a reminder and returns the owning note's refreshed
// reminder list.
//
// The backing notification is cancelled best-effort: a handle the scheduler
// no longer knows (the alert already fired, or a restart dropped the timer)
// does not block the removal. Removing an already-removed reminder fails
// with store.ErrReminderNotFound.
func (r *reminderService) RemoveReminder(ctx context.Context, session models.Session, reminderID int64) ([]models.Reminder, error) {
	log := logger.FromContext(ctx)

	reminder, err := r.reminderRepository.GetReminder(ctx, reminderID, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("reminder lookup failed: %w", err)
	}

	if reminder.Scheduled() {
		r.cancelQuietly(ctx, *reminder.NotificationID)
	}

	if err = r.reminderRepository.DeleteReminder(ctx, reminderID); err != nil {
		log.Err(err).Int64("reminder_id", reminderID).Msg("reminder deletion ended with error")
		return nil, fmt.Errorf("reminder deletion ended with error: %w", err)
	}

	log.Info().
		Int64("reminder_id", reminderID).
		Int64("note_id", reminder.NoteID).
		Msg("reminder removed")

	return r.reminderRepository.ListByNote(ctx, reminder.NoteID)
}

// ListReminders returns a note's reminders, soonest first. The note must
// belong to the session user.
func (r *reminderService) ListReminders(ctx context.Context, session models.Session, noteID int64) ([]models.Reminder, error) {
	if _, err := r.noteRepository.GetNote(ctx, noteID, session.UserID); err != nil {
		return nil, fmt.Errorf("note lookup failed: %w", err)
	}

	reminders, err := r.reminderRepository.ListByNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("reminder listing failed: %w", err)
	}

	return reminders, nil
}

// DeleteNote removes a note together with all of its reminders.
//
// Pending notifications are cancelled first, best-effort; the rows are then
// removed in one transaction so a crash can never leave reminders pointing at
// a deleted note. A notification whose cancel was missed fires into a tap
// flow that simply finds no note.
func (r *reminderService) DeleteNote(ctx context.Context, session models.Session, noteID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.noteRepository.GetNote(ctx, noteID, session.UserID); err != nil {
		return fmt.Errorf("note lookup failed: %w", err)
	}

	unlock := r.locks.lock(noteID)
	defer unlock()

	reminders, err := r.reminderRepository.ListByNote(ctx, noteID)
	if err != nil {
		return fmt.Errorf("reminder listing failed: %w", err)
	}

	for _, reminder := range reminders {
		if reminder.Scheduled() {
			r.cancelQuietly(ctx, *reminder.NotificationID)
		}
	}

	if err = r.noteRepository.DeleteNoteWithReminders(ctx, noteID, session.UserID); err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note deletion ended with error")
		return fmt.Errorf("note deletion ended with error: %w", err)
	}

	log.Info().
		Int64("note_id", noteID).
		Int("cancelled_reminders", len(reminders)).
		Msg("note deleted with reminders")

	return nil
}

// NotificationTapped resolves a tapped notification back to its note so the
// client can deep-link to it. Returns store.ErrNoteNotFound when the note was
// deleted between the notification firing and the tap.
func (r *reminderService) NotificationTapped(ctx context.Context, session models.Session, noteID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := r.noteRepository.GetNote(ctx, noteID, session.UserID)
	if err != nil {
		log.Warn().Int64("note_id", noteID).Msg("tapped notification points at a missing note")
		return models.Note{}, fmt.Errorf("note lookup failed: %w", err)
	}

	return note, nil
}

// cancelQuietly revokes a notification handle, logging instead of failing
// when the scheduler no longer knows it.
func (r *reminderService) cancelQuietly(ctx context.Context, handle string) {
	log := logger.FromContext(ctx)

	if err := r.scheduler.Cancel(ctx, handle); err != nil {
		log.Debug().
			Err(err).
			Str("handle", handle).
			Msg("notification cancel was a no-op")
	}
}
