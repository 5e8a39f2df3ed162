package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/models"
)

// reminderRepository is the database-backed implementation of
// [ReminderRepository].
type reminderRepository struct {
	*DB
	logger *logger.Logger
}

// NewReminderRepository constructs a [ReminderRepository] backed by the
// provided database connection and logger.
func NewReminderRepository(db *DB, logger *logger.Logger) ReminderRepository {
	return &reminderRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveReminder inserts a reminder row and returns it with the server-assigned
// ID populated. The NotificationID is stored as given, including nil for
// reminders whose notification could not be scheduled.
func (p *reminderRepository) SaveReminder(ctx context.Context, reminder models.Reminder) (models.Reminder, error) {
	log := logger.FromContext(ctx)

	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now().UTC()
	}

	err := p.DB.QueryRowContext(ctx, saveReminder,
		reminder.NoteID,
		reminder.ReminderAt,
		reminder.CreatedAt,
		reminder.NotificationID,
	).Scan(&reminder.ID)

	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.SaveReminder").
			Int64("note_id", reminder.NoteID).
			Time("reminder_at", reminder.ReminderAt).
			Msg("failed to insert reminder")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return reminder, nil
}

// GetReminder retrieves a reminder by ID, joined through its note so that
// only the note's owner can see it.
//
// Returns [ErrReminderNotFound] when no row matches — including the case
// where the reminder exists but hangs off another user's note.
func (p *reminderRepository) GetReminder(ctx context.Context, reminderID, userID int64) (models.Reminder, error) {
	log := logger.FromContext(ctx)

	var reminder models.Reminder
	err := p.DB.QueryRowContext(ctx, getReminderForUser, reminderID, userID).Scan(
		&reminder.ID,
		&reminder.NoteID,
		&reminder.ReminderAt,
		&reminder.CreatedAt,
		&reminder.NotificationID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "reminderRepository.GetReminder").
				Int64("reminder_id", reminderID).
				Int64("user_id", userID).
				Msg("reminder not found")
			return models.Reminder{}, ErrReminderNotFound
		}

		log.Err(err).
			Str("func", "reminderRepository.GetReminder").
			Int64("reminder_id", reminderID).
			Msg("failed to query reminder")
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return reminder, nil
}

// ListByNote retrieves every reminder attached to a note, ordered by
// reminder_at ascending (soonest first).
//
// Returns an empty slice when the note has no reminders.
func (p *reminderRepository) ListByNote(ctx context.Context, noteID int64) ([]models.Reminder, error) {
	return p.queryReminders(ctx, "reminderRepository.ListByNote", listRemindersByNote, noteID)
}

// ListPending retrieves every reminder whose fire instant is strictly after
// the given moment, across all users, ordered by reminder_at ascending. Used
// on boot to rebuild in-process notification timers.
func (p *reminderRepository) ListPending(ctx context.Context, after time.Time) ([]models.Reminder, error) {
	return p.queryReminders(ctx, "reminderRepository.ListPending", listPendingReminders, after)
}

// queryReminders runs a reminder SELECT and scans all rows. Shared by the two
// list methods, which differ only in query and argument.
func (p *reminderRepository) queryReminders(ctx context.Context, funcName, query string, arg any) ([]models.Reminder, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, query, arg)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Msg("failed to execute query for listing reminders")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	reminders := make([]models.Reminder, 0, 10)

	for rows.Next() {
		var reminder models.Reminder

		scanErr := rows.Scan(
			&reminder.ID,
			&reminder.NoteID,
			&reminder.ReminderAt,
			&reminder.CreatedAt,
			&reminder.NotificationID,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Msg("failed to scan reminder row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		reminders = append(reminders, reminder)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return reminders, nil
}

// DeleteReminder removes a single reminder row by ID. Ownership must already
// have been checked via [reminderRepository.GetReminder].
//
// Returns [ErrReminderNotFound] when no row matches.
func (p *reminderRepository) DeleteReminder(ctx context.Context, reminderID int64) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, deleteReminderByID, reminderID)
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.DeleteReminder").
			Int64("reminder_id", reminderID).
			Msg("failed to delete reminder")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrReminderNotFound
	}

	log.Debug().
		Str("func", "reminderRepository.DeleteReminder").
		Int64("reminder_id", reminderID).
		Msg("reminder deleted")

	return nil
}

// DeleteByNote removes every reminder attached to a note. Deleting zero rows
// is not an error: a note without reminders is a normal state.
func (p *reminderRepository) DeleteByNote(ctx context.Context, noteID int64) error {
	log := logger.FromContext(ctx)

	if _, err := p.DB.ExecContext(ctx, deleteRemindersByNote, noteID); err != nil {
		log.Err(err).
			Str("func", "reminderRepository.DeleteByNote").
			Int64("note_id", noteID).
			Msg("failed to delete reminders for note")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// UpdateNotificationID overwrites the scheduler handle stored on a reminder.
// Passing nil clears the handle, marking the reminder as unscheduled.
//
// Returns [ErrReminderNotFound] when no row matches.
func (p *reminderRepository) UpdateNotificationID(ctx context.Context, reminderID int64, notificationID *string) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, updateReminderNotificationID, notificationID, reminderID)
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.UpdateNotificationID").
			Int64("reminder_id", reminderID).
			Msg("failed to update notification id")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrReminderNotFound
	}

	return nil
}
