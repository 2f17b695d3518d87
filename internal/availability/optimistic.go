package availability

import (
	"fmt"
	"strconv"
	"time"
)

// UnknownBooker is recorded when neither the slot nor the booking names a person.
const UnknownBooker = "Unknown"

// timestampLayout matches JavaScript's Date.toISOString, which the widgets compare against.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// ApplyOptimisticBooking marks slotID as booked in cache so a freshly booked slot
// renders as full before the next fetch. A slot missing from the cache is
// synthesized from its id as a booked one-seat slot; an id that cannot be
// parsed leaves the cache unchanged.
//
// The input slice and its records are not modified. The returned slice is the
// new cache.
func ApplyOptimisticBooking(cache []Record, slotID, requesterName string, now time.Time) []Record {
	out := make([]Record, len(cache), len(cache)+1)
	matched := false
	for i, rec := range cache {
		if rec != nil && slotID != "" && rec.SlotID() == slotID {
			out[i] = markBooked(rec, requesterName, now)
			matched = true
			continue
		}
		out[i] = rec
	}
	if matched {
		return out
	}
	if rec := synthesizeBooked(slotID, requesterName, now); rec != nil {
		out = append(out, rec)
	}
	return out
}

func markBooked(rec Record, requesterName string, now time.Time) Record {
	out := rec.Clone()
	out["booked"] = true
	out["status"] = string(StatusFull)
	out["available"] = false
	out["booker_name"] = bookerName(rec, requesterName)
	if _, ok := rec.firstString("booked_at"); !ok {
		out["booked_at"] = now.UTC().Format(timestampLayout)
	}
	if capacity, ok := toNumber(rec["capacity"]); ok && capacity > 0 {
		out["booked_count"] = int(capacity)
	} else {
		out["capacity"] = 1
		out["booked_count"] = 1
	}
	return out
}

func synthesizeBooked(slotID, requesterName string, now time.Time) Record {
	date, start, ok := ParseSlotID(slotID)
	if !ok {
		return nil
	}
	return Record{
		"slot_id":         slotID,
		"date":            date,
		"start_time":      start,
		"end_time":        oneHourAfter(start),
		"booked":          true,
		"status":          string(StatusFull),
		"available":       false,
		"booker_name":     bookerName(nil, requesterName),
		"booked_at":       now.UTC().Format(timestampLayout),
		"capacity":        1,
		"booked_count":    1,
		"meeting_type":    "",
		"attendee_emails": []string{},
	}
}

func bookerName(rec Record, requesterName string) string {
	if name, ok := rec.firstString("booker_name"); ok {
		return name
	}
	if requesterName != "" {
		return requesterName
	}
	return UnknownBooker
}

// oneHourAfter adds an hour to an HH:MM clock time, wrapping at midnight.
func oneHourAfter(start string) string {
	hour, err := strconv.Atoi(start[:2])
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%02d:%s", (hour+1)%24, start[3:])
}
