package availability

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Meeting types after normalization.
const (
	MeetingOnline   = "online"
	MeetingInPerson = "in_person"
)

var meetingTypeAliases = map[string]string{
	"online":    MeetingOnline,
	"virtual":   MeetingOnline,
	"remote":    MeetingOnline,
	"in_person": MeetingInPerson,
	"in-person": MeetingInPerson,
	"in person": MeetingInPerson,
	"onsite":    MeetingInPerson,
}

// NormalizeSlot canonicalises a raw backend record. It returns nil when raw is
// not a JSON object; callers filter nils out of batches.
//
// The result is a shallow copy of raw with the canonical fields written over it,
// so fields the normalizer does not know about stay readable.
func NormalizeSlot(raw any) Record {
	src, ok := asRecord(raw)
	if !ok {
		return nil
	}
	out := src.Clone()

	start := stringField(src, startTimeKeys)
	out["start_time"] = start
	out["end_time"] = stringField(src, endTimeKeys)

	if id, ok := src.firstText(slotIDKeys...); ok {
		out["slot_id"] = id
	} else if id := BuildSlotID(src.String("date"), start); id != "" {
		out["slot_id"] = id
	} else {
		out["slot_id"] = nil
	}

	out["booked"] = src.isTrue("booked") ||
		src.isFalse("available") ||
		strings.ToLower(src.String("status")) == string(StatusFull)

	if name, ok := src.firstText(bookerNameKeys...); ok {
		out["booker_name"] = name
	} else {
		out["booker_name"] = nil
	}

	out["meeting_type"] = NormalizeMeetingType(src["meeting_type"])
	out["attendee_emails"] = NormalizeAttendees(src["attendee_emails"])
	return out
}

// NormalizeAll normalizes a batch and drops entries that are not objects.
func NormalizeAll(raws []any) []Record {
	out := make([]Record, 0, len(raws))
	for _, raw := range raws {
		if rec := NormalizeSlot(raw); rec != nil {
			out = append(out, rec)
		}
	}
	return out
}

// NormalizeMeetingType maps the backend's meeting type spellings onto
// MeetingOnline or MeetingInPerson. Unknown values pass through lower-cased.
func NormalizeMeetingType(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return MeetingOnline
		}
		return ""
	case string:
		key := strings.ToLower(strings.TrimSpace(t))
		if mapped, ok := meetingTypeAliases[key]; ok {
			return mapped
		}
		return strings.ToLower(t)
	default:
		return strings.ToLower(fmt.Sprint(t))
	}
}

// NormalizeAttendees accepts a list, a JSON array string, or a ";"/","
// separated string and returns the trimmed, non-empty entries.
func NormalizeAttendees(v any) []string {
	switch t := v.(type) {
	case []any:
		return cleanList(t)
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return cleanList(items)
	case string:
		trimmed := strings.TrimSpace(t)
		if strings.HasPrefix(trimmed, "[") {
			var items []any
			if err := json.Unmarshal([]byte(trimmed), &items); err == nil {
				return cleanList(items)
			}
		}
		parts := strings.FieldsFunc(t, func(r rune) bool { return r == ';' || r == ',' })
		out := []string{}
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return []string{}
	}
}

func cleanList(items []any) []string {
	out := []string{}
	for _, item := range items {
		if item == nil {
			continue
		}
		if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stringField(r Record, keys []string) string {
	v, ok := r.first(keys...)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func asRecord(raw any) (Record, bool) {
	switch t := raw.(type) {
	case Record:
		return t, t != nil
	case map[string]any:
		return Record(t), t != nil
	default:
		return nil, false
	}
}
