package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/models"
)

// noteRepository is the database-backed implementation of [NoteRepository].
// It executes all note CRUD operations against the "notes" table using the
// embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, note_id, etc.).
type noteRepository struct {
	*DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateNote inserts a new note row and returns the note with the
// server-assigned ID populated via the INSERT … RETURNING id clause.
func (p *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	err := p.DB.QueryRowContext(ctx, createNote,
		note.UserID,
		note.Title,
		note.Description,
		note.ImagePath,
		note.Latitude,
		note.Longitude,
		note.Address,
		note.StepCount,
		note.CreatedAt,
		note.CreatedTimezone,
	).Scan(&note.ID)

	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.CreateNote").
			Int64("user_id", note.UserID).
			Msg("failed to insert note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return note, nil
}

// GetNote retrieves a single note by ID, filtered by the owning user.
//
// Returns [ErrNoteNotFound] when no row matches — including the case where
// the note exists but belongs to a different user.
func (p *noteRepository) GetNote(ctx context.Context, noteID, userID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	err := p.DB.QueryRowContext(ctx, getNote, noteID, userID).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Description,
		&note.ImagePath,
		&note.Latitude,
		&note.Longitude,
		&note.Address,
		&note.StepCount,
		&note.CreatedAt,
		&note.CreatedTimezone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "noteRepository.GetNote").
				Int64("note_id", noteID).
				Int64("user_id", userID).
				Msg("note not found")
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "noteRepository.GetNote").
			Int64("note_id", noteID).
			Int64("user_id", userID).
			Msg("failed to query note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return note, nil
}

// GetNoteByID retrieves a note by ID without an ownership filter. Used by
// the startup rescheduler, which walks reminders across all users.
func (p *noteRepository) GetNoteByID(ctx context.Context, noteID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	err := p.DB.QueryRowContext(ctx, getNoteByID, noteID).Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Description,
		&note.ImagePath,
		&note.Latitude,
		&note.Longitude,
		&note.Address,
		&note.StepCount,
		&note.CreatedAt,
		&note.CreatedTimezone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "noteRepository.GetNoteByID").
			Int64("note_id", noteID).
			Msg("failed to query note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return note, nil
}

// ListNotes retrieves every note owned by the given user that matches the
// filter, newest first.
//
// Returns an empty slice when no records are found.
func (p *noteRepository) ListNotes(ctx context.Context, userID int64, filter models.NoteFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotesQuery(userID, filter)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListNotes").
			Int64("user_id", userID).
			Msg("failed to create query")
		return nil, err
	}

	rows, queryErr := p.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "noteRepository.ListNotes").
			Int64("user_id", userID).
			Msg("failed to execute query for listing notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 20)

	for rows.Next() {
		var note models.Note

		scanErr := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.Title,
			&note.Description,
			&note.ImagePath,
			&note.Latitude,
			&note.Longitude,
			&note.Address,
			&note.StepCount,
			&note.CreatedAt,
			&note.CreatedTimezone,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "noteRepository.ListNotes").
				Int64("user_id", userID).
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "noteRepository.ListNotes").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return notes, nil
}

// UpdateNote overwrites the mutable fields of a note (title, description,
// image path, location, address, timezone). CreatedAt and StepCount are not
// touched by this method.
//
// Returns [ErrNoteNotFound] when no row matches the note ID and owner.
func (p *noteRepository) UpdateNote(ctx context.Context, note models.Note) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, updateNote,
		note.Title,
		note.Description,
		note.ImagePath,
		note.Latitude,
		note.Longitude,
		note.Address,
		note.CreatedTimezone,
		note.ID,
		note.UserID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.UpdateNote").
			Int64("note_id", note.ID).
			Int64("user_id", note.UserID).
			Msg("failed to execute update query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		log.Warn().
			Str("func", "noteRepository.UpdateNote").
			Int64("note_id", note.ID).
			Msg("note not found")
		return ErrNoteNotFound
	}

	return nil
}

// UpdateStepCount overwrites the step total of a note.
//
// Returns [ErrNoteNotFound] when no row matches the note ID and owner.
func (p *noteRepository) UpdateStepCount(ctx context.Context, noteID, userID, steps int64) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, updateStepCount, steps, noteID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.UpdateStepCount").
			Int64("note_id", noteID).
			Int64("user_id", userID).
			Msg("failed to execute update query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	log.Debug().
		Str("func", "noteRepository.UpdateStepCount").
		Int64("note_id", noteID).
		Int64("steps", steps).
		Msg("step count updated")

	return nil
}

// DeleteNoteWithReminders removes a note together with every reminder row
// that references it, inside a single transaction.
//
// Reminders are deleted first so that a failure between the two statements
// can never leave reminder rows pointing at a missing note. The transaction
// is rolled back automatically (via defer) if any statement fails.
//
// Returns [ErrNoteNotFound] when the note does not exist or belongs to a
// different user; in that case no reminder rows are removed either, since
// the transaction is rolled back.
func (p *noteRepository) DeleteNoteWithReminders(ctx context.Context, noteID, userID int64) error {
	log := logger.FromContext(ctx)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNoteWithReminders").
			Int64("note_id", noteID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteRemindersByNote, noteID); err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNoteWithReminders").
			Int64("note_id", noteID).
			Msg("failed to delete reminders for note")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	result, err := tx.ExecContext(ctx, deleteNoteByID, noteID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNoteWithReminders").
			Int64("note_id", noteID).
			Int64("user_id", userID).
			Msg("failed to delete note")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		log.Warn().
			Str("func", "noteRepository.DeleteNoteWithReminders").
			Int64("note_id", noteID).
			Int64("user_id", userID).
			Msg("note not found")
		return ErrNoteNotFound
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "noteRepository.DeleteNoteWithReminders").
			Int64("note_id", noteID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "noteRepository.DeleteNoteWithReminders").
		Int64("note_id", noteID).
		Int64("user_id", userID).
		Msg("note and its reminders deleted")

	return nil
}
