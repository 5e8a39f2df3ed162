package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/internal/store"
	"github.com/travelnote/travelnote/models"
)

type permissionUserRepoMock struct {
	authUserRepoMock
	updateNotifyPermissionFunc func(ctx context.Context, userID int64, status models.PermissionStatus) error
}

func (m *permissionUserRepoMock) UpdateNotifyPermission(ctx context.Context, userID int64, status models.PermissionStatus) error {
	return m.updateNotifyPermissionFunc(ctx, userID, status)
}

func TestPermissionStatus_DelegatesToGate(t *testing.T) {
	gate := &gateMock{
		statusFunc: func(_ context.Context, userID int64) (models.PermissionStatus, error) {
			assert.Equal(t, int64(1), userID)
			return models.PermissionGranted, nil
		},
	}

	svc := NewPermissionService(gate, &permissionUserRepoMock{}, logger.Nop())

	status, err := svc.PermissionStatus(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionGranted, status)
}

func TestSetPermission_RejectsUnknownStatus(t *testing.T) {
	svc := NewPermissionService(&gateMock{}, &permissionUserRepoMock{}, logger.Nop())

	err := svc.SetPermission(context.Background(), testSession, "maybe")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestSetPermission_AllowsDeniedToGranted(t *testing.T) {
	var gotStatus models.PermissionStatus
	repo := &permissionUserRepoMock{
		updateNotifyPermissionFunc: func(_ context.Context, _ int64, status models.PermissionStatus) error {
			gotStatus = status
			return nil
		},
	}

	svc := NewPermissionService(&gateMock{}, repo, logger.Nop())

	require.NoError(t, svc.SetPermission(context.Background(), testSession, models.PermissionGranted))
	assert.Equal(t, models.PermissionGranted, gotStatus)
}

func TestSetPermission_UserNotFound(t *testing.T) {
	repo := &permissionUserRepoMock{
		updateNotifyPermissionFunc: func(_ context.Context, _ int64, _ models.PermissionStatus) error {
			return store.ErrNoUserWasFound
		},
	}

	svc := NewPermissionService(&gateMock{}, repo, logger.Nop())

	err := svc.SetPermission(context.Background(), testSession, models.PermissionDenied)
	require.ErrorIs(t, err, store.ErrNoUserWasFound)
}
