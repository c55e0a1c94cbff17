package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"invitepage/internal/delivery/http/controllers"
	"invitepage/internal/delivery/http/middleware"
	"invitepage/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	publicController *controllers.PublicController,
	shareController *controllers.ShareController,
	billingController *controllers.BillingController,
	healthController *controllers.HealthController,
) *http.ServeMux {
	mux := http.NewServeMux()

	authRequired := middleware.RequireAuth(verifier, logger)
	// Credential endpoints get a per-IP limit; guest response submission
	// deliberately does not (see DESIGN.md on dedup).
	authLimiter := middleware.NewIPRateLimiter(10, 5, 5*time.Minute)
	limited := middleware.RateLimitByIP(authLimiter)

	// Auth
	mux.HandleFunc("POST /auth/signup", limited(authController.SignUp))
	mux.HandleFunc("POST /auth/login", limited(authController.Login))

	// Owner API
	mux.HandleFunc("GET /events", authRequired(eventController.ListMyEvents))
	mux.HandleFunc("POST /events", authRequired(eventController.CreateEvent))
	mux.HandleFunc("POST /events/suggest-tags", authRequired(eventController.SuggestTags))
	mux.HandleFunc("PATCH /events/{eventID}", authRequired(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", authRequired(eventController.DeleteEvent))
	mux.HandleFunc("GET /events/{eventID}/stats", authRequired(eventController.Stats))
	mux.HandleFunc("POST /events/{eventID}/share", authRequired(shareController.Share))
	mux.HandleFunc("GET /events/{eventID}/shares", authRequired(shareController.ListShares))
	mux.HandleFunc("POST /events/{eventID}/upgrade", authRequired(billingController.StartUpgrade))

	// Public invitation page
	mux.HandleFunc("GET /public/events/{eventID}", publicController.GetEvent)
	mux.HandleFunc("POST /public/events/{eventID}/view", publicController.RecordView)
	mux.HandleFunc("POST /public/events/{eventID}/responses", publicController.SubmitResponse)

	// Payment provider callback
	mux.HandleFunc("POST /webhooks/stripe", billingController.Webhook)

	// Ops
	mux.HandleFunc("GET /healthz", healthController.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
