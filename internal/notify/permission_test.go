package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/internal/store"
	"github.com/travelnote/travelnote/models"
)

// userRepoMock implements store.UserRepository with overridable funcs.
type userRepoMock struct {
	getUserByIDFunc            func(ctx context.Context, userID int64) (models.User, error)
	updateNotifyPermissionFunc func(ctx context.Context, userID int64, status models.PermissionStatus) error
}

func (m *userRepoMock) CreateUser(_ context.Context, _ models.User) (models.User, error) {
	return models.User{}, errors.New("not implemented")
}

func (m *userRepoMock) FindUserByUsername(_ context.Context, _ string) (models.User, error) {
	return models.User{}, errors.New("not implemented")
}

func (m *userRepoMock) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	return m.getUserByIDFunc(ctx, userID)
}

func (m *userRepoMock) UpdateNotifyPermission(ctx context.Context, userID int64, status models.PermissionStatus) error {
	return m.updateNotifyPermissionFunc(ctx, userID, status)
}

func userWithPermission(status models.PermissionStatus) func(context.Context, int64) (models.User, error) {
	return func(_ context.Context, userID int64) (models.User, error) {
		return models.User{UserID: userID, NotifyPermission: status}, nil
	}
}

func TestStatus_ReturnsStoredState(t *testing.T) {
	gate := NewStoredPermissionGate(&userRepoMock{
		getUserByIDFunc: userWithPermission(models.PermissionDenied),
	}, logger.Nop())

	status, err := gate.Status(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionDenied, status)
}

func TestStatus_EmptyStateIsUndetermined(t *testing.T) {
	gate := NewStoredPermissionGate(&userRepoMock{
		getUserByIDFunc: userWithPermission(""),
	}, logger.Nop())

	status, err := gate.Status(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionUndetermined, status)
}

func TestStatus_UserNotFound(t *testing.T) {
	gate := NewStoredPermissionGate(&userRepoMock{
		getUserByIDFunc: func(_ context.Context, _ int64) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}, logger.Nop())

	_, err := gate.Status(context.Background(), 404)
	require.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestRequest_PromotesUndeterminedToGranted(t *testing.T) {
	var updatedTo models.PermissionStatus
	gate := NewStoredPermissionGate(&userRepoMock{
		getUserByIDFunc: userWithPermission(models.PermissionUndetermined),
		updateNotifyPermissionFunc: func(_ context.Context, _ int64, status models.PermissionStatus) error {
			updatedTo = status
			return nil
		},
	}, logger.Nop())

	status, err := gate.Request(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionGranted, status)
	assert.Equal(t, models.PermissionGranted, updatedTo)
}

func TestRequest_NeverOverridesDenial(t *testing.T) {
	gate := NewStoredPermissionGate(&userRepoMock{
		getUserByIDFunc: userWithPermission(models.PermissionDenied),
		updateNotifyPermissionFunc: func(_ context.Context, _ int64, _ models.PermissionStatus) error {
			t.Fatal("Request must not write when permission is already denied")
			return nil
		},
	}, logger.Nop())

	status, err := gate.Request(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionDenied, status)
}

func TestRequest_GrantIsIdempotent(t *testing.T) {
	gate := NewStoredPermissionGate(&userRepoMock{
		getUserByIDFunc: userWithPermission(models.PermissionGranted),
		updateNotifyPermissionFunc: func(_ context.Context, _ int64, _ models.PermissionStatus) error {
			t.Fatal("Request must not write when permission is already granted")
			return nil
		},
	}, logger.Nop())

	status, err := gate.Request(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionGranted, status)
}
