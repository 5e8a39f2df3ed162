package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/internal/service"
	"github.com/travelnote/travelnote/models"
)

// --- func-field service mocks shared by the handler tests ---

type authServiceMock struct {
	registerUserFunc func(ctx context.Context, request models.RegisterRequest) (models.User, error)
	loginFunc        func(ctx context.Context, request models.LoginRequest) (models.User, error)
	createTokenFunc  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFunc   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *authServiceMock) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	return m.registerUserFunc(ctx, request)
}

func (m *authServiceMock) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	return m.loginFunc(ctx, request)
}

func (m *authServiceMock) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFunc != nil {
		return m.createTokenFunc(ctx, user)
	}
	return models.Token{SignedString: "test-token", UserID: user.UserID}, nil
}

func (m *authServiceMock) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFunc != nil {
		return m.parseTokenFunc(ctx, tokenString)
	}
	if tokenString == "valid-token" {
		return models.Token{UserID: 1}, nil
	}
	return models.Token{}, service.ErrTokenIsExpiredOrInvalid
}

type noteServiceMock struct {
	createNoteFunc  func(ctx context.Context, session models.Session, request models.CreateNoteRequest) (models.Note, error)
	getNoteFunc     func(ctx context.Context, session models.Session, noteID int64) (models.Note, error)
	listNotesFunc   func(ctx context.Context, session models.Session, filter models.NoteFilter) ([]models.Note, error)
	updateNoteFunc  func(ctx context.Context, session models.Session, noteID int64, request models.UpdateNoteRequest) (models.Note, error)
	updateStepsFunc func(ctx context.Context, session models.Session, noteID, stepCount int64) error
}

func (m *noteServiceMock) CreateNote(ctx context.Context, session models.Session, request models.CreateNoteRequest) (models.Note, error) {
	return m.createNoteFunc(ctx, session, request)
}

func (m *noteServiceMock) GetNote(ctx context.Context, session models.Session, noteID int64) (models.Note, error) {
	return m.getNoteFunc(ctx, session, noteID)
}

func (m *noteServiceMock) ListNotes(ctx context.Context, session models.Session, filter models.NoteFilter) ([]models.Note, error) {
	return m.listNotesFunc(ctx, session, filter)
}

func (m *noteServiceMock) UpdateNote(ctx context.Context, session models.Session, noteID int64, request models.UpdateNoteRequest) (models.Note, error) {
	return m.updateNoteFunc(ctx, session, noteID, request)
}

func (m *noteServiceMock) UpdateSteps(ctx context.Context, session models.Session, noteID, stepCount int64) error {
	return m.updateStepsFunc(ctx, session, noteID, stepCount)
}

type reminderServiceMock struct {
	addReminderFunc        func(ctx context.Context, session models.Session, noteID int64, reminderAt time.Time) ([]models.Reminder, error)
	removeReminderFunc     func(ctx context.Context, session models.Session, reminderID int64) ([]models.Reminder, error)
	listRemindersFunc      func(ctx context.Context, session models.Session, noteID int64) ([]models.Reminder, error)
	deleteNoteFunc         func(ctx context.Context, session models.Session, noteID int64) error
	notificationTappedFunc func(ctx context.Context, session models.Session, noteID int64) (models.Note, error)
}

func (m *reminderServiceMock) AddReminder(ctx context.Context, session models.Session, noteID int64, reminderAt time.Time) ([]models.Reminder, error) {
	return m.addReminderFunc(ctx, session, noteID, reminderAt)
}

func (m *reminderServiceMock) RemoveReminder(ctx context.Context, session models.Session, reminderID int64) ([]models.Reminder, error) {
	return m.removeReminderFunc(ctx, session, reminderID)
}

func (m *reminderServiceMock) ListReminders(ctx context.Context, session models.Session, noteID int64) ([]models.Reminder, error) {
	return m.listRemindersFunc(ctx, session, noteID)
}

func (m *reminderServiceMock) DeleteNote(ctx context.Context, session models.Session, noteID int64) error {
	return m.deleteNoteFunc(ctx, session, noteID)
}

func (m *reminderServiceMock) NotificationTapped(ctx context.Context, session models.Session, noteID int64) (models.Note, error) {
	return m.notificationTappedFunc(ctx, session, noteID)
}

type permissionServiceMock struct {
	permissionStatusFunc func(ctx context.Context, session models.Session) (models.PermissionStatus, error)
	setPermissionFunc    func(ctx context.Context, session models.Session, status models.PermissionStatus) error
}

func (m *permissionServiceMock) PermissionStatus(ctx context.Context, session models.Session) (models.PermissionStatus, error) {
	return m.permissionStatusFunc(ctx, session)
}

func (m *permissionServiceMock) SetPermission(ctx context.Context, session models.Session, status models.PermissionStatus) error {
	return m.setPermissionFunc(ctx, session, status)
}

// newTestHandler builds a Handler around the given service mocks, filling in
// an auth mock that accepts "valid-token" as user 1.
func newTestHandler(services *service.Services) *Handler {
	if services.AuthService == nil {
		services.AuthService = &authServiceMock{}
	}
	return NewHandler(services, logger.Nop())
}

// authedRequest builds a request carrying a valid bearer token.
func authedRequest(method, target string, body interface{}) *http.Request {
	r := httptest.NewRequest(method, target, jsonBody(body))
	r.Header.Set("Authorization", "Bearer valid-token")
	return r
}

// jsonBody marshals v into a request body. Strings are passed through
// verbatim so tests can send deliberately malformed JSON.
func jsonBody(v interface{}) io.Reader {
	if v == nil {
		return nil
	}
	if raw, ok := v.(string); ok {
		return strings.NewReader(raw)
	}

	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bytes.NewReader(b)
}
