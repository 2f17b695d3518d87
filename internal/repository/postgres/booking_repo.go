package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"bookingcalendar/internal/domain"
)

// Schema is the DDL for the bookings table.
const Schema = `
CREATE TABLE IF NOT EXISTS bookings (
	id              UUID PRIMARY KEY,
	calendar_id     TEXT NOT NULL,
	slot_id         TEXT NOT NULL,
	slot_date       DATE,
	start_time      TEXT NOT NULL,
	requester_name  TEXT NOT NULL,
	requester_email TEXT NOT NULL,
	meeting_type    TEXT NOT NULL DEFAULT '',
	attendee_emails TEXT[] NOT NULL DEFAULT '{}',
	notes           TEXT NOT NULL DEFAULT '',
	booked_at       TIMESTAMPTZ NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
);
ALTER TABLE bookings ALTER COLUMN slot_date DROP NOT NULL;
CREATE INDEX IF NOT EXISTS bookings_calendar_booked_at_idx ON bookings (calendar_id, booked_at DESC);
`

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

// Migrate creates the bookings table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, calendar_id, slot_id, slot_date, start_time, requester_name, requester_email,
			meeting_type, attendee_emails, notes, booked_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query,
		b.ID, b.CalendarID, b.SlotID, nullableDate(b.SlotDate), b.StartTime, b.RequesterName, b.RequesterEmail,
		b.MeetingType, pq.Array(b.AttendeeEmails), b.Notes, b.BookedAt, b.CreatedAt,
	)
	return err
}

// nullableDate stores an unknown slot date as NULL.
func nullableDate(date string) sql.NullString {
	return sql.NullString{String: date, Valid: date != ""}
}

// ListByCalendar returns one page of bookings, newest first, and the total count.
func (r *bookingRepository) ListByCalendar(ctx context.Context, calendarID string, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	query := `
		SELECT id, calendar_id, slot_id, to_char(slot_date, 'YYYY-MM-DD'), start_time, requester_name, requester_email,
			meeting_type, attendee_emails, notes, booked_at, created_at, COUNT(*) OVER()
		FROM bookings
		WHERE calendar_id = $1
		ORDER BY booked_at DESC, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, calendarID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings := []*domain.Booking{}
	total := 0
	for rows.Next() {
		b := &domain.Booking{}
		var attendees pq.StringArray
		var slotDate sql.NullString
		if err := rows.Scan(&b.ID, &b.CalendarID, &b.SlotID, &slotDate, &b.StartTime, &b.RequesterName, &b.RequesterEmail,
			&b.MeetingType, &attendees, &b.Notes, &b.BookedAt, &b.CreatedAt, &total); err != nil {
			return nil, 0, err
		}
		b.SlotDate = slotDate.String
		b.AttendeeEmails = []string(attendees)
		if b.AttendeeEmails == nil {
			b.AttendeeEmails = []string{}
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(bookings) == 0 && params.Offset() > 0 {
		// Past the last page: COUNT(*) OVER() has no row to ride on.
		if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE calendar_id = $1`, calendarID).Scan(&total); err != nil {
			return nil, 0, err
		}
	}
	return bookings, total, nil
}
