package domain

import (
	"context"
	"time"
)

// Booking is a booking made through this service, kept as an audit log.
// The backend stays the authority on slot occupancy.
// swagger:model Booking
type Booking struct {
	ID             string    `json:"id"`
	CalendarID     string    `json:"calendar_id"`
	SlotID         string    `json:"slot_id"`
	SlotDate       string    `json:"slot_date"`
	StartTime      string    `json:"start_time"`
	RequesterName  string    `json:"requester_name"`
	RequesterEmail string    `json:"requester_email"`
	MeetingType    string    `json:"meeting_type"`
	AttendeeEmails []string  `json:"attendee_emails"`
	Notes          string    `json:"notes"`
	BookedAt       time.Time `json:"booked_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewBooking returns a Booking for req. ID is set by the caller.
func NewBooking(req BookingRequest, slotDate, startTime string, bookedAt, createdAt time.Time) *Booking {
	attendees := req.AttendeeEmails
	if attendees == nil {
		attendees = []string{}
	}
	return &Booking{
		CalendarID:     req.CalendarID,
		SlotID:         req.SlotID,
		SlotDate:       slotDate,
		StartTime:      startTime,
		RequesterName:  req.RequesterName,
		RequesterEmail: req.RequesterEmail,
		MeetingType:    req.MeetingType,
		AttendeeEmails: attendees,
		Notes:          req.Notes,
		BookedAt:       bookedAt,
		CreatedAt:      createdAt,
	}
}

// BookingRepository defines the interface for booking log storage
type BookingRepository interface {
	Create(ctx context.Context, b *Booking) error
	ListByCalendar(ctx context.Context, calendarID string, params PaginationParams) ([]*Booking, int, error)
}
