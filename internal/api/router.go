package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Phronesis2025/wcs-basketball-go/internal/api/handler"
	"github.com/Phronesis2025/wcs-basketball-go/internal/api/middleware"
	"github.com/Phronesis2025/wcs-basketball-go/internal/dependencies/clock"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/auth"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/billing"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/ledger"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/registration"
	"github.com/Phronesis2025/wcs-basketball-go/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger                 *slog.Logger
	Storage                storage.Storage
	Clock                  clock.Clock
	AuthService            *auth.Service
	RegistrationController *registration.Controller
	BillingService         *billing.Service
	LedgerService          *ledger.Service
	// WebhookSecret gates the payment webhook; empty disables the check
	WebhookSecret string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	staffHandler := handler.NewStaffHandler(cfg.AuthService)
	registrationHandler := handler.NewRegistrationHandler(cfg.RegistrationController)
	guardianHandler := handler.NewGuardianHandler(cfg.Storage, cfg.BillingService, cfg.Clock)
	teamHandler := handler.NewTeamHandler(cfg.Storage, cfg.Clock)
	webhookHandler := handler.NewWebhookHandler(cfg.LedgerService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	webhookMiddleware := middleware.WebhookSecret(cfg.WebhookSecret)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Staff routes (no auth required for registering/logging in)
	api.HandleFunc("/staff/register", staffHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/staff/login", staffHandler.Login).Methods(http.MethodPost)

	staffProtected := api.PathPrefix("/staff").Subrouter()
	staffProtected.Use(authMiddleware)
	staffProtected.HandleFunc("/me", staffHandler.GetMe).Methods(http.MethodGet)

	// Registration submission is open: guardians submit from the public form
	api.HandleFunc("/players", registrationHandler.Register).Methods(http.MethodPost)

	// Transition routes are operator actions and require a staff session
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("/{id}", registrationHandler.Get).Methods(http.MethodGet)
	players.HandleFunc("/{id}/approve", registrationHandler.Approve).Methods(http.MethodPost)
	players.HandleFunc("/{id}/hold", registrationHandler.Hold).Methods(http.MethodPost)
	players.HandleFunc("/{id}/reject", registrationHandler.Reject).Methods(http.MethodPost)
	players.HandleFunc("/{id}/revert", registrationHandler.Revert).Methods(http.MethodPost)

	// Guardian routes (staff-facing billing reads)
	api.HandleFunc("/guardians", guardianHandler.Create).Methods(http.MethodPost)
	guardians := api.PathPrefix("/guardians").Subrouter()
	guardians.Use(authMiddleware)
	guardians.HandleFunc("/{id}", guardianHandler.Get).Methods(http.MethodGet)
	guardians.HandleFunc("/{id}/players", guardianHandler.Players).Methods(http.MethodGet)
	guardians.HandleFunc("/{id}/balance", guardianHandler.Balance).Methods(http.MethodGet)
	guardians.HandleFunc("/{id}/invoice", guardianHandler.Invoice).Methods(http.MethodGet)

	// Team routes
	teams := api.PathPrefix("/teams").Subrouter()
	teams.Use(authMiddleware)
	teams.HandleFunc("", teamHandler.Create).Methods(http.MethodPost)
	teams.HandleFunc("", teamHandler.List).Methods(http.MethodGet)
	teams.HandleFunc("/{id}", teamHandler.Get).Methods(http.MethodGet)

	// Payment webhook (shared-secret gated, no staff session)
	webhooks := api.PathPrefix("/webhooks").Subrouter()
	webhooks.Use(webhookMiddleware)
	webhooks.HandleFunc("/payments", webhookHandler.Payment).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
