package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelnote/travelnote/internal/service"
	"github.com/travelnote/travelnote/internal/store"
	"github.com/travelnote/travelnote/models"
)

func TestNotificationTapped_ReturnsNote(t *testing.T) {
	reminderSvc := &reminderServiceMock{
		notificationTappedFunc: func(_ context.Context, _ models.Session, noteID int64) (models.Note, error) {
			assert.Equal(t, int64(42), noteID)
			return models.Note{ID: 42, Title: "Ubud"}, nil
		},
	}
	h := newTestHandler(&service.Services{ReminderService: reminderSvc})

	w := httptest.NewRecorder()
	r := authedRequest(http.MethodPost, "/api/notifications/tap",
		models.NotificationTapRequest{NoteID: 42})
	h.Init().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var note models.Note
	require.NoError(t, json.NewDecoder(w.Body).Decode(&note))
	assert.Equal(t, int64(42), note.ID)
}

func TestNotificationTapped_NoteGone(t *testing.T) {
	reminderSvc := &reminderServiceMock{
		notificationTappedFunc: func(_ context.Context, _ models.Session, _ int64) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotFound
		},
	}
	h := newTestHandler(&service.Services{ReminderService: reminderSvc})

	w := httptest.NewRecorder()
	r := authedRequest(http.MethodPost, "/api/notifications/tap",
		models.NotificationTapRequest{NoteID: 42})
	h.Init().ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPermissionStatus(t *testing.T) {
	permissionSvc := &permissionServiceMock{
		permissionStatusFunc: func(_ context.Context, session models.Session) (models.PermissionStatus, error) {
			assert.Equal(t, int64(1), session.UserID)
			return models.PermissionDenied, nil
		},
	}
	h := newTestHandler(&service.Services{PermissionService: permissionSvc})

	w := httptest.NewRecorder()
	h.Init().ServeHTTP(w, authedRequest(http.MethodGet, "/api/user/notifications", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var response models.PermissionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, models.PermissionDenied, response.Status)
}

func TestSetPermission(t *testing.T) {
	var gotStatus models.PermissionStatus
	permissionSvc := &permissionServiceMock{
		setPermissionFunc: func(_ context.Context, _ models.Session, status models.PermissionStatus) error {
			gotStatus = status
			return nil
		},
	}
	h := newTestHandler(&service.Services{PermissionService: permissionSvc})

	w := httptest.NewRecorder()
	r := authedRequest(http.MethodPut, "/api/user/notifications",
		models.PermissionRequest{Status: models.PermissionGranted})
	h.Init().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PermissionGranted, gotStatus)
}

func TestSetPermission_InvalidStatus(t *testing.T) {
	permissionSvc := &permissionServiceMock{
		setPermissionFunc: func(_ context.Context, _ models.Session, _ models.PermissionStatus) error {
			return service.ErrInvalidDataProvided
		},
	}
	h := newTestHandler(&service.Services{PermissionService: permissionSvc})

	w := httptest.NewRecorder()
	r := authedRequest(http.MethodPut, "/api/user/notifications",
		models.PermissionRequest{Status: "sometimes"})
	h.Init().ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
