package router

import (
	"net/http"

	"infinium/internal/handler"
	"infinium/internal/middleware"

	"github.com/rs/zerolog"
)

// Options configures the middleware chain and file serving.
type Options struct {
	APIKey       string
	CORSOrigin   string
	MaxBodyBytes int64
	// ImageDir is served under /images/ when set.
	ImageDir string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	foodHandler *handler.FoodHandler,
	userHandler *handler.UserHandler,
	deviceHandler *handler.DeviceHandler,
	healthHandler *handler.HealthHandler,
	staticHandler http.Handler,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Food routes
	mux.HandleFunc("POST /api/food/{userId}/analyze", foodHandler.Analyze)
	mux.HandleFunc("GET /api/food/{userId}/history", foodHandler.History)
	mux.HandleFunc("GET /api/food/{userId}/daily-summary", foodHandler.DailySummary)
	mux.HandleFunc("POST /api/food/{userId}/diet-plan/generate", foodHandler.GenerateDietPlan)
	mux.HandleFunc("GET /api/food/{userId}/diet-plan", foodHandler.ActiveDietPlan)
	mux.HandleFunc("GET /api/food/{userId}/diet-plan/history", foodHandler.DietPlanHistory)
	mux.HandleFunc("GET /api/food/{userId}/recommendations", foodHandler.Recommendations)

	// User routes
	mux.HandleFunc("POST /api/users/profile", userHandler.SaveProfile)
	mux.HandleFunc("GET /api/users/{userId}/profile", userHandler.GetProfile)
	mux.HandleFunc("POST /api/users/{userId}/family", userHandler.AddFamilyMember)
	mux.HandleFunc("GET /api/users/{userId}/family", userHandler.FamilyMembers)

	// Device uploads
	mux.HandleFunc("POST /api/esp32/upload", deviceHandler.Upload)

	mux.Handle("/api/", handler.NotFound(logger))

	if opts.ImageDir != "" {
		mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(opts.ImageDir))))
	}

	if staticHandler != nil {
		mux.Handle("/", staticHandler)
	} else {
		mux.Handle("/", handler.NotFound(logger))
	}

	// Apply middleware in order: Recovery -> Logging -> CORS -> BodyLimit -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(opts.APIKey, logger)(h)
	h = middleware.BodyLimit(opts.MaxBodyBytes)(h)
	h = middleware.CORS(opts.CORSOrigin)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
