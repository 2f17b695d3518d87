package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookingcalendar/internal/availability"
	"bookingcalendar/internal/delivery/http/controllers"
	"bookingcalendar/internal/domain"

	"github.com/stretchr/testify/assert"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type stubCalendarService struct{}

func (stubCalendarService) ListSlots(context.Context, domain.SlotQuery) ([]availability.View, error) {
	return nil, nil
}

func (stubCalendarService) BookSlot(_ context.Context, req domain.BookingRequest) (*domain.BookingResult, error) {
	return &domain.BookingResult{Booking: &domain.Booking{ID: "bk-1"}}, nil
}

func (stubCalendarService) ListBookings(context.Context, string, domain.PaginationParams) ([]*domain.Booking, int, error) {
	return nil, 0, nil
}

func (stubCalendarService) RefreshUpcoming(context.Context, string, time.Time, int) (int, error) {
	return 0, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, string, string) (string, error) { return "tok", nil }

type stubVerifier struct{}

func (stubVerifier) Verify(token string) (string, error) {
	if token != "good" {
		return "", errors.New("bad token")
	}
	return "admin", nil
}

func TestNewRouter(t *testing.T) {
	mux := NewRouter(
		controllers.NewCalendarController(testLogger, stubCalendarService{}),
		controllers.NewAuthController(testLogger, stubAuthService{}),
		stubVerifier{},
		testLogger,
	)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		token      string
		wantStatus int
	}{
		{"health", http.MethodGet, "/healthz", "", "", http.StatusOK},
		{"list slots", http.MethodGet, "/calendars/cal-1/slots?from=2025-06-02&to=2025-06-02", "", "", http.StatusOK},
		{"book slot", http.MethodPost, "/calendars/cal-1/bookings", `{"slot_id":"SLOT_2025-06-02_0900","requester_name":"Ada"}`, "", http.StatusCreated},
		{"login", http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"x"}`, "", http.StatusOK},
		{"bookings without token", http.MethodGet, "/calendars/cal-1/bookings", "", "", http.StatusUnauthorized},
		{"bookings with token", http.MethodGet, "/calendars/cal-1/bookings", "", "good", http.StatusOK},
		{"wrong method", http.MethodDelete, "/calendars/cal-1/slots", "", "", http.StatusMethodNotAllowed},
		{"swagger doc", http.MethodGet, "/swagger/doc.json", "", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
		})
	}
}
