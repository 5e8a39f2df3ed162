package store

import "github.com/travelnote/travelnote/internal/logger"

// Repositories bundles every repository backed by the shared database
// connection. Constructed once at startup and handed to the service layer.
type Repositories struct {
	UserRepository     UserRepository
	NoteRepository     NoteRepository
	ReminderRepository ReminderRepository
}

// NewRepositories constructs all repositories on top of the given connection.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db, logger),
		NoteRepository:     NewNoteRepository(db, logger),
		ReminderRepository: NewReminderRepository(db, logger),
	}
}
