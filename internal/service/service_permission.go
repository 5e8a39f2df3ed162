package service

import (
	"context"
	"fmt"

	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/internal/notify"
	"github.com/travelnote/travelnote/internal/store"
	"github.com/travelnote/travelnote/models"
)

// permissionService is the concrete implementation of PermissionService. It
// fronts the notification permission gate for the settings surface, which is
// the only place a stored denial can be flipped back.
type permissionService struct {
	permissionGate notify.PermissionGate
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewPermissionService constructs a PermissionService.
func NewPermissionService(permissionGate notify.PermissionGate, userRepository store.UserRepository, logger *logger.Logger) PermissionService {
	return &permissionService{
		permissionGate: permissionGate,
		userRepository: userRepository,
		logger:         logger,
	}
}

// PermissionStatus reports the session user's stored notification permission.
func (p *permissionService) PermissionStatus(ctx context.Context, session models.Session) (models.PermissionStatus, error) {
	status, err := p.permissionGate.Status(ctx, session.UserID)
	if err != nil {
		return "", fmt.Errorf("permission status lookup failed: %w", err)
	}

	return status, nil
}

// SetPermission overwrites the stored permission with an explicit user
// choice. Unlike the gate's Request, settings may move in any direction,
// including denied back to granted.
//
// Returns ErrInvalidDataProvided for an unknown status value.
func (p *permissionService) SetPermission(ctx context.Context, session models.Session, status models.PermissionStatus) error {
	log := logger.FromContext(ctx)

	if !status.Valid() {
		log.Error().Str("status", string(status)).Msg("invalid permission status provided")
		return ErrInvalidDataProvided
	}

	if err := p.userRepository.UpdateNotifyPermission(ctx, session.UserID, status); err != nil {
		return fmt.Errorf("permission update failed: %w", err)
	}

	log.Info().
		Int64("user_id", session.UserID).
		Str("status", string(status)).
		Msg("notification permission updated from settings")

	return nil
}
