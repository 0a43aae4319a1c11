package routes

import (
	"net/http"

	"github.com/paramparahq/parampara/internal/app"
	"github.com/paramparahq/parampara/internal/handler"
	"github.com/paramparahq/parampara/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	location := handler.NewLocationHandler(app.LocationService)
	submission := handler.NewSubmissionHandler(app.IngestService, app.SubmissionService, app.Cfg)
	meta := handler.NewMetaHandler(app.Cfg)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Public
	mux.HandleFunc("GET /api/meta", meta.Meta)
	mux.HandleFunc("GET /api/stats", submission.Stats)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	mux.HandleFunc("POST /api/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /api/logout", auth.Logout)

	// Authenticated
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(auth.Me))
	mux.HandleFunc("GET /api/me/location", middleware.RequireAuth(location.Latest))
	mux.HandleFunc("POST /api/me/location", middleware.RequireAuth(location.Record))
	mux.HandleFunc("POST /api/submissions", middleware.RequireAuth(submission.Create))
	mux.HandleFunc("GET /api/submissions", middleware.RequireAuth(submission.List))

	// Admin
	mux.HandleFunc("GET /api/export", middleware.RequireAdmin(submission.Export))

	// Uploaded artifacts (local driver serves them straight off disk)
	if app.Cfg.StorageDriver == "local" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(app.Cfg.UploadDir))))
	}

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserRepository),
	)
}
