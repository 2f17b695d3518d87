package availability

import "strings"

// Status is the derived availability of a slot.
type Status string

const (
	StatusOpen      Status = "open"
	StatusFull      Status = "full"
	StatusCancelled Status = "cancelled"
)

// SessionStatus derives a slot's status. Checks run in a fixed order:
// cancellation wins over everything, an explicit booked flag or "full" status is
// trusted before the seat counts, and available=false only matters last.
func SessionStatus(session Record, seats Seats) Status {
	status := strings.ToLower(strings.TrimSpace(session.String("status")))
	switch {
	case status == string(StatusCancelled):
		return StatusCancelled
	case session.isTrue("booked") || status == string(StatusFull):
		return StatusFull
	case seats.Known && seats.Booked >= seats.Capacity:
		return StatusFull
	case session.isFalse("available"):
		return StatusFull
	default:
		return StatusOpen
	}
}
