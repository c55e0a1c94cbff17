package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"invitepage/config"
	_ "invitepage/docs"
	authadapter "invitepage/internal/adapters/auth"
	"invitepage/internal/adapters/email"
	"invitepage/internal/adapters/payment"
	"invitepage/internal/adapters/tagai"
	"invitepage/internal/cache"
	httpdelivery "invitepage/internal/delivery/http"
	"invitepage/internal/delivery/http/controllers"
	"invitepage/internal/delivery/http/middleware"
	"invitepage/internal/domain"
	"invitepage/internal/repository/postgres"
	"invitepage/internal/services"
)

const serviceTimeout = 10 * time.Second

// @title invitepage API
// @description Event invitation pages: organizers create an event, guests respond, organizers see statistics.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	userRepo := postgres.NewUserRepository(db)
	shareRepo := postgres.NewEventShareRepository(db)

	// Adapters
	tokens := authadapter.NewJWTTokens(cfg.JWTSecret)
	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	mailer, err := email.NewMailer(cfg.Mailer)
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}
	var suggester domain.TagSuggester
	if cfg.GeminiAPIKey != "" {
		suggester = tagai.NewGeminiSuggester(nil, "", cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	checkout := payment.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Stripe.PriceID)

	// Services
	eventService := services.NewEventService(eventRepo, suggester, logger, serviceTimeout)
	authService := services.NewAuthService(userRepo, hasher, tokens, cfg.JWTExpiry, serviceTimeout)
	shareService := services.NewShareService(eventRepo, shareRepo, mailer, cfg.PublicBaseURL, logger, serviceTimeout)
	upgradeService := services.NewUpgradeService(eventService, eventRepo, checkout, cfg.PublicBaseURL, serviceTimeout)
	ownerCache := cache.NewOwnerCache(eventRepo)

	// Controllers
	mux := httpdelivery.NewRouter(logger, tokens,
		controllers.NewAuthController(logger, authService),
		controllers.NewEventController(logger, eventService, ownerCache),
		controllers.NewPublicController(logger, eventService),
		controllers.NewShareController(logger, shareService),
		controllers.NewBillingController(logger, upgradeService, checkout),
		controllers.NewHealthController(db),
	)

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
