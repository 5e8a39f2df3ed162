package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/notes", func(r chi.Router) {
			r.Get("/", h.listNotes)
			r.Post("/", h.createNote)

			r.Route("/{noteID}", func(r chi.Router) {
				r.Get("/", h.getNote)
				r.Put("/", h.updateNote)
				r.Delete("/", h.deleteNote)
				r.Patch("/steps", h.updateSteps)

				r.Get("/reminders", h.listReminders)
				r.Post("/reminders", h.addReminder)
			})
		})

		r.Delete("/api/reminders/{reminderID}", h.removeReminder)

		r.Post("/api/notifications/tap", h.notificationTapped)
		r.Get("/api/user/notifications", h.permissionStatus)
		r.Put("/api/user/notifications", h.setPermission)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
