package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSlotID(t *testing.T) {
	tests := []struct {
		date, start string
		want        string
	}{
		{"2025-12-01", "09:00", "SLOT_2025-12-01_0900"},
		{"2025-06-10", "14:00", "SLOT_2025-06-10_1400"},
		{"2025/12/01", "09:00", ""},
		{"2025-12-01", "9:00", ""},
		{"2025-12-01", "", ""},
		{"", "09:00", ""},
		{"2025-12-01", "09:00:00", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BuildSlotID(tt.date, tt.start), "%s %s", tt.date, tt.start)
	}
}

func TestParseSlotID(t *testing.T) {
	date, start, ok := ParseSlotID("SLOT_2099-01-01_0800")
	assert.True(t, ok)
	assert.Equal(t, "2099-01-01", date)
	assert.Equal(t, "08:00", start)

	date, start, ok = ParseSlotID("slot_2099-01-01_0800")
	assert.True(t, ok)
	assert.Equal(t, "SLOT_2099-01-01_0800", BuildSlotID(date, start))

	for _, bad := range []string{"", "SLOT_2099-01-01", "SLOT_2099-01-01_800", "room-42", "SLOT_2099-01-01_0800X"} {
		_, _, ok := ParseSlotID(bad)
		assert.False(t, ok, bad)
	}
}
