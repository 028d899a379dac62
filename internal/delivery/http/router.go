package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"whenworks/internal/delivery/http/controllers"
	"whenworks/internal/delivery/http/middleware"
	"whenworks/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	teamController *controllers.TeamController,
	calendarController *controllers.CalendarController,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events
	mux.HandleFunc("GET /events", requireAuth(eventController.ListMine))
	mux.HandleFunc("POST /events", requireAuth(eventController.Create))
	mux.HandleFunc("PUT /events/{eventID}", requireAuth(eventController.Update))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.Delete))

	// Teams
	mux.HandleFunc("GET /teams", requireAuth(teamController.ListMine))
	mux.HandleFunc("POST /teams", requireAuth(teamController.Create))
	mux.HandleFunc("POST /teams/join", requireAuth(teamController.Join))
	mux.HandleFunc("GET /teams/{pin}/members", requireAuth(teamController.Members))
	mux.HandleFunc("POST /teams/{pin}/invitations", requireAuth(teamController.Invite))
	mux.HandleFunc("GET /teams/{pin}/events", requireAuth(eventController.ListByTeam))
	mux.HandleFunc("GET /teams/{pin}/heatmap", requireAuth(calendarController.TeamHeatmap))

	// Observability
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
