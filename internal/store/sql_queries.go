package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/travelnote/travelnote/models"
)

const (
	createUser = `INSERT INTO users (username, password_hash, profile_image, timezone, notify_permission, created_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id;`

	findUserByUsername = `SELECT id, username, password_hash, profile_image, timezone, notify_permission, created_at
    FROM users
    WHERE username = $1;`

	getUserByID = `SELECT id, username, password_hash, profile_image, timezone, notify_permission, created_at
    FROM users
    WHERE id = $1;`

	updateNotifyPermission = `UPDATE users
    SET notify_permission = $1
    WHERE id = $2;`

	createNote = `INSERT INTO notes (
			user_id,
			title,
			description,
			image_path,
			latitude,
			longitude,
			address,
			step_count,
			created_at,
			created_timezone
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;`

	getNote = `SELECT id, user_id, title, description, image_path, latitude, longitude, address, step_count, created_at, created_timezone
		FROM notes
		WHERE id = $1 AND user_id = $2;`

	getNoteByID = `SELECT id, user_id, title, description, image_path, latitude, longitude, address, step_count, created_at, created_timezone
		FROM notes
		WHERE id = $1;`

	updateNote = `UPDATE notes SET
			title            = $1,
			description      = $2,
			image_path       = $3,
			latitude         = $4,
			longitude        = $5,
			address          = $6,
			created_timezone = $7
		WHERE id = $8 AND user_id = $9;`

	updateStepCount = `UPDATE notes
		SET step_count = $1
		WHERE id = $2 AND user_id = $3;`

	deleteNoteByID = `DELETE FROM notes
		WHERE id = $1 AND user_id = $2;`

	saveReminder = `INSERT INTO reminders (note_id, reminder_at, created_at, notification_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id;`

	getReminderForUser = `SELECT r.id, r.note_id, r.reminder_at, r.created_at, r.notification_id
		FROM reminders r
		JOIN notes n ON n.id = r.note_id
		WHERE r.id = $1 AND n.user_id = $2;`

	listRemindersByNote = `SELECT id, note_id, reminder_at, created_at, notification_id
		FROM reminders
		WHERE note_id = $1
		ORDER BY reminder_at ASC;`

	listPendingReminders = `SELECT id, note_id, reminder_at, created_at, notification_id
		FROM reminders
		WHERE reminder_at > $1
		ORDER BY reminder_at ASC;`

	deleteReminderByID = `DELETE FROM reminders
		WHERE id = $1;`

	deleteRemindersByNote = `DELETE FROM reminders
		WHERE note_id = $1;`

	// placeholders stay in textual order: the sqlite3 driver binds $name
	// parameters by first appearance, not by number
	updateReminderNotificationID = `UPDATE reminders
		SET notification_id = $1
		WHERE id = $2;`
)

// buildListNotesQuery assembles the note-listing SELECT for the given user
// and filter. squirrel keeps the dynamic WHERE/LIMIT composition readable and
// produces $N placeholders valid for both supported drivers.
func buildListNotesQuery(userID int64, filter models.NoteFilter) (string, []any, error) {
	builder := sq.Select(
		"id", "user_id", "title", "description", "image_path",
		"latitude", "longitude", "address", "step_count",
		"created_at", "created_timezone",
	).
		From("notes").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Search != "" {
		builder = builder.Where(sq.Like{"LOWER(title)": "%" + strings.ToLower(filter.Search) + "%"})
	}

	if filter.HasLocation != nil {
		if *filter.HasLocation {
			builder = builder.Where(sq.NotEq{"latitude": nil})
		} else {
			builder = builder.Where(sq.Eq{"latitude": nil})
		}
	}

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
