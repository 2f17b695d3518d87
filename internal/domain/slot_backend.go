package domain

import "context"

// SlotBackend is the remote booking backend (a Google Apps Script web app, or a test double).
// ListSessions returns the raw session records; normalization is the caller's job.
type SlotBackend interface {
	ListSessions(ctx context.Context, q SlotQuery) ([]any, error)
	Book(ctx context.Context, req BookingRequest) (BookingConfirmation, error)
}

// BookingConfirmation is the backend's answer to a booking.
type BookingConfirmation struct {
	BookingID     string `json:"booking_id"`
	SlotID        string `json:"slot_id"`
	RequesterName string `json:"requester_name"`
	BookedAt      string `json:"booked_at"`
	Message       string `json:"message"`
}
