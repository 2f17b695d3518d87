package availability

import (
	"regexp"
	"strings"
)

const slotIDPrefix = "SLOT_"

var (
	dateRe      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockTimeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
	slotIDRe    = regexp.MustCompile(`^SLOT_(\d{4}-\d{2}-\d{2})_(\d{2})(\d{2})$`)
)

// BuildSlotID returns the deterministic id SLOT_<date>_<HHMM> for a slot, or ""
// when date is not YYYY-MM-DD or startTime is not HH:MM. An empty result means
// the slot cannot be booked by id.
func BuildSlotID(date, startTime string) string {
	if !dateRe.MatchString(date) || !clockTimeRe.MatchString(startTime) {
		return ""
	}
	return strings.ToUpper(slotIDPrefix + date + "_" + strings.ReplaceAll(startTime, ":", ""))
}

// ParseSlotID is the inverse of BuildSlotID.
func ParseSlotID(id string) (date, startTime string, ok bool) {
	m := slotIDRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(id)))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2] + ":" + m[3], true
}

// IsValidDate reports whether s has the YYYY-MM-DD shape used by slot ids.
func IsValidDate(s string) bool {
	return dateRe.MatchString(s)
}
