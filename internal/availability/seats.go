package availability

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Seats is the occupancy of a slot. When Known is false the counts could not
// be parsed and all three serialize as null.
type Seats struct {
	Capacity  int
	Booked    int
	Remaining int
	Known     bool
}

type seatsJSON struct {
	Capacity  *int `json:"capacity"`
	Booked    *int `json:"booked"`
	Remaining *int `json:"remaining"`
}

func (s Seats) MarshalJSON() ([]byte, error) {
	if !s.Known {
		return json.Marshal(seatsJSON{})
	}
	return json.Marshal(seatsJSON{Capacity: &s.Capacity, Booked: &s.Booked, Remaining: &s.Remaining})
}

func (s *Seats) UnmarshalJSON(b []byte) error {
	var v seatsJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v.Capacity == nil || v.Booked == nil || v.Remaining == nil {
		*s = Seats{}
		return nil
	}
	*s = Seats{Capacity: *v.Capacity, Booked: *v.Booked, Remaining: *v.Remaining, Known: true}
	return nil
}

// SeatInfoOf derives capacity, booked and remaining seats from a session.
// Booked seats come from the booked_count aliases, falling back to the boolean
// booked flag (true means every seat is taken). Unparsable input yields the
// unknown triple rather than zeros.
func SeatInfoOf(session Record) Seats {
	capacity, ok := toNumber(session["capacity"])
	if !ok {
		return Seats{}
	}
	var booked float64
	if v, found := session.first(bookedCountKeys...); found {
		if booked, ok = toNumber(v); !ok {
			return Seats{}
		}
	} else {
		flag, isBool := session["booked"].(bool)
		if !isBool {
			return Seats{}
		}
		if flag {
			booked = capacity
		}
	}
	c, b := int(capacity), int(booked)
	return Seats{Capacity: c, Booked: b, Remaining: max(c-b, 0), Known: true}
}

// toNumber parses JSON numbers and numeric strings. Fractions are truncated.
func toNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return math.Trunc(f), true
}
