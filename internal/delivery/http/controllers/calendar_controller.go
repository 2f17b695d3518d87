package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"bookingcalendar/internal/availability"
	h "bookingcalendar/internal/delivery/http/helpers"
	"bookingcalendar/internal/domain"
)

// DefaultWindowDays is the listing window used when "to" is omitted.
const DefaultWindowDays = 7

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// BookSlotRequest is the request body for POST /calendars/{calendarID}/bookings
type BookSlotRequest struct {
	SlotID         string   `json:"slot_id"`
	RequesterName  string   `json:"requester_name"`
	RequesterEmail string   `json:"requester_email"`
	MeetingType    string   `json:"meeting_type"`
	AttendeeEmails []string `json:"attendee_emails"`
	Notes          string   `json:"notes"`
}

// Validate implements Validator.
func (b BookSlotRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(b.SlotID) == "" {
		errs = append(errs, "slot_id is required")
	}
	if strings.TrimSpace(b.RequesterName) == "" {
		errs = append(errs, "requester_name is required")
	}
	if email := strings.TrimSpace(b.RequesterEmail); email != "" && !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid requester_email format")
	}
	for _, a := range b.AttendeeEmails {
		if a = strings.TrimSpace(a); a != "" && !emailRegexp.MatchString(a) {
			errs = append(errs, "invalid attendee email: "+a)
		}
	}
	if len(b.Notes) > 2000 {
		errs = append(errs, "notes must be at most 2000 characters")
	}
	return errs
}

// ListSlotsResponse is the data payload of GET /calendars/{calendarID}/slots
type ListSlotsResponse struct {
	Slots []availability.View `json:"slots"`
}

// BookSlotResponse is the data payload of POST /calendars/{calendarID}/bookings
type BookSlotResponse struct {
	Slot      availability.View `json:"slot"`
	BookingID string            `json:"booking_id"`
}

type CalendarController struct {
	Logger  *slog.Logger
	Service domain.CalendarService
	now     func() time.Time
}

func NewCalendarController(logger *slog.Logger, svc domain.CalendarService) *CalendarController {
	return &CalendarController{
		Logger:  logger,
		Service: svc,
		now:     time.Now,
	}
}

// Health godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /healthz [get]
func (c *CalendarController) Health(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListSlots godoc
// @Summary List calendar slots
// @Description Fetch the slots of a calendar between two dates (inclusive) with their seat counts and status. "from" defaults to today (UTC) and "to" to a week after "from".
// @Tags calendars
// @Produce json
// @Param calendarID path string true "Calendar ID"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {object} helpers.APIResponse "data contains slots"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Router /calendars/{calendarID}/slots [get]
func (c *CalendarController) ListSlots(w http.ResponseWriter, r *http.Request) {
	calendarID := strings.TrimSpace(r.PathValue("calendarID"))
	if calendarID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "calendar id is required")
		return
	}
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" {
		from = c.now().UTC().Format(time.DateOnly)
	}
	if to == "" {
		if start, err := time.Parse(time.DateOnly, from); err == nil {
			to = start.AddDate(0, 0, DefaultWindowDays-1).Format(time.DateOnly)
		} else {
			to = from
		}
	}

	slots, err := c.Service.ListSlots(r.Context(), domain.SlotQuery{CalendarID: calendarID, From: from, To: to})
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if slots == nil {
		slots = []availability.View{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, ListSlotsResponse{Slots: slots})
}

// BookSlot godoc
// @Summary Book a slot
// @Description Book one slot of a calendar. The slot id is "SLOT_<YYYY-MM-DD>_<HHMM>" or an id returned by the slots listing. On success the returned slot already reflects the booking.
// @Tags calendars
// @Accept json
// @Produce json
// @Param calendarID path string true "Calendar ID"
// @Param body body BookSlotRequest true "Booking data"
// @Success 201 {object} helpers.APIResponse "data contains slot and booking_id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 502 {object} helpers.APIResponse "error.code: bad_gateway"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendars/{calendarID}/bookings [post]
func (c *CalendarController) BookSlot(w http.ResponseWriter, r *http.Request) {
	calendarID := strings.TrimSpace(r.PathValue("calendarID"))
	if calendarID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "calendar id is required")
		return
	}
	var req BookSlotRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Service.BookSlot(r.Context(), domain.BookingRequest{
		CalendarID:     calendarID,
		SlotID:         req.SlotID,
		RequesterName:  req.RequesterName,
		RequesterEmail: strings.TrimSpace(strings.ToLower(req.RequesterEmail)),
		MeetingType:    req.MeetingType,
		AttendeeEmails: req.AttendeeEmails,
		Notes:          strings.TrimSpace(req.Notes),
	})
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	bookingID := ""
	if result.Booking != nil {
		bookingID = result.Booking.ID
	}
	h.WriteJSONSuccess(w, http.StatusCreated, BookSlotResponse{Slot: result.Slot, BookingID: bookingID})
}

// ListBookings godoc
// @Summary List bookings made through this service
// @Description Paginated booking log of a calendar, newest first. Requires an admin token.
// @Tags calendars
// @Produce json
// @Security BearerAuth
// @Param calendarID path string true "Calendar ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 25, max 200)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendars/{calendarID}/bookings [get]
func (c *CalendarController) ListBookings(w http.ResponseWriter, r *http.Request) {
	calendarID := strings.TrimSpace(r.PathValue("calendarID"))
	if calendarID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "calendar id is required")
		return
	}
	params := h.ParsePagination(r)
	bookings, total, err := c.Service.ListBookings(r.Context(), calendarID, params)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	h.WriteJSONSuccess(w, http.StatusOK, h.NewPaginatedResponse(bookings, params, total))
}
