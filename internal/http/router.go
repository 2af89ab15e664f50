package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kelvin100238453/gympro-backend/internal/http/handlers"
	"github.com/kelvin100238453/gympro-backend/internal/http/middleware"
	"github.com/kelvin100238453/gympro-backend/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, svc)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, svc)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
// Auth-эндпойнты открыты; всё остальное живёт за RequireAuth.
func registerRoutes(r chi.Router, h *handlers.Handlers, svc *service.Service) {
	// auth
	r.Post("/auth/client/login", h.LoginClient)
	r.Post("/auth/trainer/login", h.LoginTrainer)
	r.Post("/auth/trainer/register", h.RegisterTrainer)
	r.Post("/auth/client/refresh-token", h.RefreshToken)

	// защищённые роуты
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth(svc))

		// clients
		pr.Get("/clients", h.ListClients)
		pr.Post("/clients", h.CreateClient)
		pr.Put("/clients/{id}", h.UpdateClient)
		pr.Delete("/clients/{id}", h.DeleteClient)
		pr.Post("/clients/{id}/log-workout", h.LogWorkout)

		// exercises
		pr.Get("/exercises", h.ListExercises)
		pr.Put("/exercises", h.ReplaceExercises)

		// notifications
		pr.Get("/notifications", h.ListNotifications)
		pr.Post("/notifications", h.CreateNotification)
		pr.Post("/notifications/clear", h.ClearNotifications)
	})
}
