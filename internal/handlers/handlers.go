package handlers

import (
	"FriendKeeper/internal/config"
	"FriendKeeper/internal/middleware"
	"FriendKeeper/internal/service"
	"FriendKeeper/internal/storage"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services — всё, что нужно хендлерам от слоя сервиса.
type Services struct {
	Users        *service.UserService
	Friends      *service.FriendService
	Interactions *service.InteractionService
	Dashboard    *service.DashboardService
	Files        *storage.Local
}

// NewHandler разводящий для хендлеров
func NewHandler(svc Services, logger *zap.SugaredLogger, config *config.Config) *Handler {
	r := chi.NewRouter()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Handler)

	// Handlers
	userHandler := NewUserHandler(svc.Users, logger, config)
	friendHandler := NewFriendHandler(svc.Friends, svc.Files, logger)
	interactionHandler := NewInteractionHandler(svc.Interactions, logger)
	dashboardHandler := NewDashboardHandler(svc.Dashboard, svc.Friends, logger)
	uploadHandler := NewUploadHandler(svc.Files, logger)

	// promhttp сам сжимает ответ, поэтому /metrics вне WithGzip
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithGzip)
		r.Use(middleware.WithLogging)
		r.Use(middleware.WithAuth(config.AuthSecret))

		r.Get("/health-check", HealthCheck)
		r.Handle("/storage/*", http.StripPrefix("/storage/", noListing(http.FileServer(http.Dir(svc.Files.Root())))))
		r.Route("/api", apiRoutes(config, userHandler, friendHandler, interactionHandler, dashboardHandler, uploadHandler))
	})

	return &Handler{Router: r}
}

func apiRoutes(
	config *config.Config,
	userHandler *UserHandler,
	friendHandler *FriendHandler,
	interactionHandler *InteractionHandler,
	dashboardHandler *DashboardHandler,
	uploadHandler *UploadHandler,
) func(r chi.Router) {
	return func(r chi.Router) {
		r.Use(middleware.WithRateLimit(middleware.NewLimiter(config.RateLimitRPS)))

		// User routes
		r.Post("/user/register", userHandler.Register)
		r.Post("/user/login", userHandler.Login)
		r.Post("/user/logout", userHandler.Logout)
		r.Get("/user/me", userHandler.Me)

		r.Get("/dashboard", dashboardHandler.Show)

		r.Route("/friends", func(r chi.Router) {
			r.Get("/", friendHandler.List)
			r.Post("/", friendHandler.Create)
			r.Get("/options", friendHandler.Options)
			r.Get("/upcoming-birthdays", friendHandler.UpcomingBirthdays)
			r.Get("/needs-contact", friendHandler.NeedsContact)
			r.Get("/{id}", friendHandler.Show)
			r.Patch("/{id}", friendHandler.Update)
			r.Put("/{id}", friendHandler.Update)
			r.Delete("/{id}", friendHandler.Delete)
		})

		r.Route("/interactions", func(r chi.Router) {
			r.Get("/", interactionHandler.List)
			r.Post("/", interactionHandler.Create)
			r.Get("/{id}", interactionHandler.Show)
			r.Delete("/{id}", interactionHandler.Delete)
		})

		r.Post("/uploads/profile-pictures", uploadHandler.ProfilePicture)
	}
}

// noListing запрещает листинг каталогов хранилища.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
