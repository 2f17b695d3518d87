package domain

import (
	"context"
	"time"

	"bookingcalendar/internal/availability"
)

// SlotQuery selects the slots of one calendar between two dates (inclusive, YYYY-MM-DD).
type SlotQuery struct {
	CalendarID string
	From       string
	To         string
}

// BookingRequest is a request to book a single slot.
type BookingRequest struct {
	CalendarID     string   `json:"calendar_id"`
	SlotID         string   `json:"slot_id"`
	RequesterName  string   `json:"requester_name"`
	RequesterEmail string   `json:"requester_email"`
	MeetingType    string   `json:"meeting_type,omitempty"`
	AttendeeEmails []string `json:"attendee_emails,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// BookingResult is returned after a successful booking: the stored booking and
// the slot as it looks after the optimistic update.
type BookingResult struct {
	Booking *Booking          `json:"booking"`
	Slot    availability.View `json:"slot"`
}

// CalendarService defines the business logic for listing and booking slots.
type CalendarService interface {
	ListSlots(ctx context.Context, q SlotQuery) ([]availability.View, error)
	BookSlot(ctx context.Context, req BookingRequest) (*BookingResult, error)
	ListBookings(ctx context.Context, calendarID string, params PaginationParams) ([]*Booking, int, error)
	RefreshUpcoming(ctx context.Context, calendarID string, from time.Time, days int) (int, error)
}
