package availability

import (
	"encoding/json"
	"strconv"
)

// Record is a slot/session record as decoded from the booking backend's JSON.
// Field names vary between backend versions, so reads go through alias lists.
type Record map[string]any

// Canonical field aliases, in lookup order.
var (
	startTimeKeys   = []string{"start_time", "starttime", "from"}
	endTimeKeys     = []string{"end_time", "endtime", "to"}
	slotIDKeys      = []string{"slot_id", "slotid"}
	bookerNameKeys  = []string{"booker_name", "reserved_by", "reservedby", "vendor"}
	bookedCountKeys = []string{"booked_count", "bookedcount", "bookedCount"}
)

// first returns the value of the first key that is present, not nil and not an empty string.
func (r Record) first(keys ...string) (any, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// firstString returns the first alias holding a non-empty string.
func (r Record) firstString(keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := r[k].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// firstText is firstString that also accepts numbers, rendered without a
// trailing ".0" (42 → "42"). Booleans and nested values are skipped.
func (r Record) firstText(keys ...string) (string, bool) {
	for _, k := range keys {
		switch v := r[k].(type) {
		case string:
			if v != "" {
				return v, true
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), true
		case float32:
			return strconv.FormatFloat(float64(v), 'f', -1, 32), true
		case int:
			return strconv.Itoa(v), true
		case int64:
			return strconv.FormatInt(v, 10), true
		case json.Number:
			if v != "" {
				return v.String(), true
			}
		}
	}
	return "", false
}

// String returns the field as a string, or "" when absent or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// isTrue reports whether the field holds the boolean true.
func (r Record) isTrue(key string) bool {
	b, ok := r[key].(bool)
	return ok && b
}

// isFalse reports whether the field holds the boolean false. A missing field is not false.
func (r Record) isFalse(key string) bool {
	b, ok := r[key].(bool)
	return ok && !b
}

// SlotID returns the record's slot_id, or "" when none is set.
func (r Record) SlotID() string {
	return r.String("slot_id")
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
