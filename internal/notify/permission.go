package notify

import (
	"context"
	"fmt"

	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/internal/store"
	"github.com/travelnote/travelnote/models"
)

// StoredPermissionGate is a [PermissionGate] that persists the tri-state
// permission on the user row, so a grant or denial survives restarts and is
// visible to every instance sharing the database.
type StoredPermissionGate struct {
	users  store.UserRepository
	logger *logger.Logger
}

// NewStoredPermissionGate constructs a [PermissionGate] backed by the user
// repository.
func NewStoredPermissionGate(users store.UserRepository, logger *logger.Logger) *StoredPermissionGate {
	return &StoredPermissionGate{
		users:  users,
		logger: logger,
	}
}

// Status reports the stored permission state for a user. An empty or
// corrupted stored value is treated as undetermined.
func (g *StoredPermissionGate) Status(ctx context.Context, userID int64) (models.PermissionStatus, error) {
	user, err := g.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("permission status lookup: %w", err)
	}

	if !user.NotifyPermission.Valid() {
		return models.PermissionUndetermined, nil
	}

	return user.NotifyPermission, nil
}

// Request asks for notification permission on behalf of a user.
//
// Only the undetermined state is promoted to granted. A stored denial stays
// denied — re-prompting a user who already said no is out; they change their
// mind through the settings endpoint instead. An existing grant is returned
// as is.
func (g *StoredPermissionGate) Request(ctx context.Context, userID int64) (models.PermissionStatus, error) {
	log := logger.FromContext(ctx)

	current, err := g.Status(ctx, userID)
	if err != nil {
		return "", err
	}

	if current != models.PermissionUndetermined {
		return current, nil
	}

	if err := g.users.UpdateNotifyPermission(ctx, userID, models.PermissionGranted); err != nil {
		return "", fmt.Errorf("permission request: %w", err)
	}

	log.Info().
		Str("func", "StoredPermissionGate.Request").
		Int64("user_id", userID).
		Msg("notification permission granted")

	return models.PermissionGranted, nil
}
