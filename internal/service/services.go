package service

import (
	"github.com/travelnote/travelnote/internal/adapter"
	"github.com/travelnote/travelnote/internal/config"
	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/internal/notify"
	"github.com/travelnote/travelnote/internal/store"
)

type Services struct {
	AuthService       AuthService
	NoteService       NoteService
	ReminderService   ReminderService
	PermissionService PermissionService
}

func NewServices(repositories store.Repositories, scheduler notify.Scheduler, permissionGate notify.PermissionGate, geocoder adapter.Geocoder, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:       NewAuthService(repositories.UserRepository, cfg.App, logger),
		NoteService:       NewNoteService(repositories.NoteRepository, repositories.UserRepository, geocoder, cfg.App, logger),
		ReminderService:   NewReminderService(repositories.ReminderRepository, repositories.NoteRepository, scheduler, permissionGate, logger),
		PermissionService: NewPermissionService(permissionGate, repositories.UserRepository, logger),
	}
}
