package http

import (
	"log/slog"
	"net/http"

	_ "bookingcalendar/docs"
	"bookingcalendar/internal/delivery/http/controllers"
	"bookingcalendar/internal/delivery/http/middleware"
	"bookingcalendar/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(calendarController *controllers.CalendarController, authController *controllers.AuthController, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	mux.HandleFunc("GET /healthz", calendarController.Health)

	// Widgets
	mux.HandleFunc("GET /calendars/{calendarID}/slots", calendarController.ListSlots)
	mux.HandleFunc("POST /calendars/{calendarID}/bookings", calendarController.BookSlot)

	// Admin
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("GET /calendars/{calendarID}/bookings", requireAuth(calendarController.ListBookings))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
