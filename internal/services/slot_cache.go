package services

import (
	"sync"
	"time"

	"bookingcalendar/internal/availability"
)

// slotCache holds the last normalized slots fetched per calendar. Bookings
// patch it optimistically; the next fetch of a date replaces what it covers.
type slotCache struct {
	mu    sync.Mutex
	slots map[string][]availability.Record
}

func newSlotCache() *slotCache {
	return &slotCache{slots: make(map[string][]availability.Record)}
}

// replaceRange swaps the cached slots of calendarID for fresh. Cached slots
// dated within [from, to] are evicted, as is any cached slot whose id appears
// in fresh. Within fresh the last record of an id wins.
func (c *slotCache) replaceRange(calendarID, from, to string, fresh []availability.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	latest := make(map[string]int, len(fresh))
	for i, r := range fresh {
		if id := r.SlotID(); id != "" {
			latest[id] = i
		}
	}
	kept := make([]availability.Record, 0, len(c.slots[calendarID])+len(fresh))
	for _, r := range c.slots[calendarID] {
		if d := r.String("date"); d != "" && d >= from && d <= to {
			continue
		}
		if _, refreshed := latest[r.SlotID()]; refreshed {
			continue
		}
		kept = append(kept, r)
	}
	for i, r := range fresh {
		if id := r.SlotID(); id != "" && latest[id] != i {
			continue
		}
		kept = append(kept, r)
	}
	c.slots[calendarID] = kept
}

// size returns how many slots are cached for calendarID.
func (c *slotCache) size(calendarID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slots[calendarID])
}

// find returns the cached slot with the given id.
func (c *slotCache) find(calendarID, slotID string) (availability.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.slots[calendarID] {
		if r.SlotID() == slotID {
			return r, true
		}
	}
	return nil, false
}

// applyBooking runs the optimistic booking update on the calendar's cache and
// returns the booked slot as it looks afterwards. ok is false when slotID is
// neither cached nor parsable.
func (c *slotCache) applyBooking(calendarID, slotID, requesterName string, at time.Time) (availability.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	updated := availability.ApplyOptimisticBooking(c.slots[calendarID], slotID, requesterName, at)
	c.slots[calendarID] = updated
	for _, r := range updated {
		if r.SlotID() == slotID {
			return r, true
		}
	}
	return nil, false
}
