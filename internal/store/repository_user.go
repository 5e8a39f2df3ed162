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

// userRepository is the database-backed implementation of [UserRepository].
// It handles account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with the server-assigned ID.
//
// Error handling:
//   - unique-constraint violation on username → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRowContext(ctx, createUser,
		user.Username,
		user.PasswordHash,
		user.ProfileImage,
		user.Timezone,
		user.NotifyPermission,
		user.CreatedAt,
	).Scan(&user.UserID)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn().Str("func", "userRepository.CreateUser").Str("username", user.Username).Msg("username already taken")
			return models.User{}, ErrUsernameAlreadyExists
		}

		log.Err(err).Str("func", "userRepository.CreateUser").Str("username", user.Username).Msg("failed to create user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// FindUserByUsername retrieves a user record by its unique username.
//
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	err := r.db.QueryRowContext(ctx, findUserByUsername, username).Scan(
		&foundUser.UserID,
		&foundUser.Username,
		&foundUser.PasswordHash,
		&foundUser.ProfileImage,
		&foundUser.Timezone,
		&foundUser.NotifyPermission,
		&foundUser.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().Str("func", "userRepository.FindUserByUsername").Str("username", username).Msg("user not found")
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "userRepository.FindUserByUsername").Str("username", username).Msg("failed to find user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return foundUser, nil
}

// GetUserByID retrieves a user record by its primary key.
//
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	err := r.db.QueryRowContext(ctx, getUserByID, userID).Scan(
		&foundUser.UserID,
		&foundUser.Username,
		&foundUser.PasswordHash,
		&foundUser.ProfileImage,
		&foundUser.Timezone,
		&foundUser.NotifyPermission,
		&foundUser.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().Str("func", "userRepository.GetUserByID").Int64("user_id", userID).Msg("user not found")
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "userRepository.GetUserByID").Int64("user_id", userID).Msg("failed to get user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return foundUser, nil
}

// UpdateNotifyPermission overwrites the stored notification permission status.
//
// Returns [ErrNoUserWasFound] when the user does not exist.
func (r *userRepository) UpdateNotifyPermission(ctx context.Context, userID int64, status models.PermissionStatus) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateNotifyPermission, status, userID)
	if err != nil {
		log.Err(err).Str("func", "userRepository.UpdateNotifyPermission").Int64("user_id", userID).Msg("failed to update notify permission")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	log.Debug().
		Str("func", "userRepository.UpdateNotifyPermission").
		Int64("user_id", userID).
		Str("status", string(status)).
		Msg("notify permission updated")

	return nil
}
