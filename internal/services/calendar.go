package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookingcalendar/internal/availability"
	"bookingcalendar/internal/domain"
)

// MaxRangeDays bounds a single slot query.
const MaxRangeDays = 62

const dateLayout = "2006-01-02"

type calendarService struct {
	backend        domain.SlotBackend
	bookingRepo    domain.BookingRepository
	emailService   domain.EmailService
	cache          *slotCache
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewCalendarService returns a CalendarService backed by the given booking backend and booking log.
func NewCalendarService(backend domain.SlotBackend, bookingRepo domain.BookingRepository, emailService domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.CalendarService {
	return &calendarService{
		backend:        backend,
		bookingRepo:    bookingRepo,
		emailService:   emailService,
		cache:          newSlotCache(),
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func validateRange(from, to string) error {
	start, err := time.Parse(dateLayout, from)
	if err != nil || !availability.IsValidDate(from) {
		return fmt.Errorf("%w: from must be YYYY-MM-DD", domain.ErrInvalidRange)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil || !availability.IsValidDate(to) {
		return fmt.Errorf("%w: to must be YYYY-MM-DD", domain.ErrInvalidRange)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: to is before from", domain.ErrInvalidRange)
	}
	if end.Sub(start) > MaxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range exceeds %d days", domain.ErrInvalidRange, MaxRangeDays)
	}
	return nil
}

func (s *calendarService) ListSlots(ctx context.Context, q domain.SlotQuery) ([]availability.View, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateRange(q.From, q.To); err != nil {
		return nil, err
	}
	records, err := s.fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	return annotateSorted(records), nil
}

func (s *calendarService) fetch(ctx context.Context, q domain.SlotQuery) ([]availability.Record, error) {
	raws, err := s.backend.ListSessions(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	records := availability.NormalizeAll(raws)
	if dropped := len(raws) - len(records); dropped > 0 {
		s.logger.WarnContext(ctx, "dropped malformed session records", "calendar_id", q.CalendarID, "count", dropped)
	}
	s.cache.replaceRange(q.CalendarID, q.From, q.To, records)
	return records, nil
}

func annotateSorted(records []availability.Record) []availability.View {
	views := make([]availability.View, 0, len(records))
	for _, r := range records {
		views = append(views, availability.Annotate(r))
	}
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Date != views[j].Date {
			return views[i].Date < views[j].Date
		}
		return views[i].StartTime < views[j].StartTime
	})
	return views
}

func (s *calendarService) BookSlot(ctx context.Context, req domain.BookingRequest) (*domain.BookingResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	req.SlotID = strings.TrimSpace(req.SlotID)
	req.RequesterName = strings.TrimSpace(req.RequesterName)
	req.MeetingType = availability.NormalizeMeetingType(req.MeetingType)
	req.AttendeeEmails = availability.NormalizeAttendees(req.AttendeeEmails)

	date, start, parsed := availability.ParseSlotID(req.SlotID)
	if parsed {
		// Deterministic ids are cached in BuildSlotID's form unless the backend sent its own spelling.
		if _, raw := s.cache.find(req.CalendarID, req.SlotID); !raw {
			req.SlotID = availability.BuildSlotID(date, start)
		}
	}
	cached, inCache := s.cache.find(req.CalendarID, req.SlotID)
	if !parsed && !inCache {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSlotID, req.SlotID)
	}
	if inCache {
		if status := availability.SessionStatus(cached, availability.SeatInfoOf(cached)); status != availability.StatusOpen {
			return nil, fmt.Errorf("%w: %s", domain.ErrSlotUnavailable, status)
		}
		date, start = cached.String("date"), cached.String("start_time")
	}

	conf, err := s.backend.Book(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("book slot: %w", err)
	}

	now := s.now()
	bookedAt := now
	if t, err := time.Parse(time.RFC3339, conf.BookedAt); err == nil {
		bookedAt = t
	}
	booking := domain.NewBooking(req, date, start, bookedAt.UTC(), now.UTC())
	booking.ID = uuid.NewString()
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		// The backend holds the booking; a missing log row is not a failed booking.
		s.logger.ErrorContext(ctx, "failed to record booking", "slot_id", req.SlotID, "err", err)
	}

	requester := conf.RequesterName
	if requester == "" {
		requester = req.RequesterName
	}
	slot, ok := s.cache.applyBooking(req.CalendarID, req.SlotID, requester, bookedAt)
	if !ok {
		slot = availability.Record{"slot_id": req.SlotID, "date": date, "start_time": start}
	}
	view := availability.Annotate(slot)

	if req.RequesterEmail != "" && s.emailService != nil {
		data := &domain.BookingConfirmationEmailData{
			Email:          req.RequesterEmail,
			RequesterName:  requester,
			CalendarID:     req.CalendarID,
			SlotID:         req.SlotID,
			Date:           view.Date,
			StartTime:      view.StartTime,
			EndTime:        view.EndTime,
			MeetingType:    req.MeetingType,
			AttendeeEmails: req.AttendeeEmails,
		}
		if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
			s.logger.ErrorContext(ctx, "failed to send booking confirmation", "slot_id", req.SlotID, "err", err)
		}
	}

	s.logger.InfoContext(ctx, "slot booked", "calendar_id", req.CalendarID, "slot_id", req.SlotID, "booking_id", booking.ID, "backend_booking_id", conf.BookingID)
	return &domain.BookingResult{Booking: booking, Slot: view}, nil
}

func (s *calendarService) ListBookings(ctx context.Context, calendarID string, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	bookings, total, err := s.bookingRepo.ListByCalendar(ctx, calendarID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, total, nil
}

// RefreshUpcoming re-fetches the next days of calendarID into the cache and
// returns how many slots are open.
func (s *calendarService) RefreshUpcoming(ctx context.Context, calendarID string, from time.Time, days int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if days < 1 {
		days = 1
	}
	if days > MaxRangeDays {
		days = MaxRangeDays
	}
	q := domain.SlotQuery{
		CalendarID: calendarID,
		From:       from.Format(dateLayout),
		To:         from.AddDate(0, 0, days-1).Format(dateLayout),
	}
	records, err := s.fetch(ctx, q)
	if err != nil {
		return 0, err
	}
	open := 0
	for _, r := range records {
		if availability.SessionStatus(r, availability.SeatInfoOf(r)) == availability.StatusOpen {
			open++
		}
	}
	return open, nil
}
