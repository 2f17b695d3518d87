package availability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatInfoOf(t *testing.T) {
	tests := []struct {
		name    string
		session Record
		want    Seats
	}{
		{"numeric strings", Record{"capacity": "10", "booked_count": "3"}, Seats{Capacity: 10, Booked: 3, Remaining: 7, Known: true}},
		{"numbers", Record{"capacity": 5.0, "booked_count": 5.0}, Seats{Capacity: 5, Booked: 5, Remaining: 0, Known: true}},
		{"overbooked clamps remaining", Record{"capacity": 2, "booked_count": 4}, Seats{Capacity: 2, Booked: 4, Remaining: 0, Known: true}},
		{"bookedcount alias", Record{"capacity": 4, "bookedcount": 1}, Seats{Capacity: 4, Booked: 1, Remaining: 3, Known: true}},
		{"bookedCount alias", Record{"capacity": 4, "bookedCount": "2"}, Seats{Capacity: 4, Booked: 2, Remaining: 2, Known: true}},
		{"booked flag true", Record{"capacity": 3, "booked": true}, Seats{Capacity: 3, Booked: 3, Remaining: 0, Known: true}},
		{"booked flag false", Record{"capacity": 3, "booked": false}, Seats{Capacity: 3, Booked: 0, Remaining: 3, Known: true}},
		{"unparsable capacity", Record{"capacity": "abc", "booked_count": 3}, Seats{}},
		{"missing capacity", Record{"booked_count": 3}, Seats{}},
		{"unparsable booked", Record{"capacity": 3, "booked_count": "n/a"}, Seats{}},
		{"no booked signal", Record{"capacity": 3}, Seats{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeatInfoOf(tt.session))
		})
	}
}

func TestSeats_JSON(t *testing.T) {
	b, err := json.Marshal(Seats{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"capacity":null,"booked":null,"remaining":null}`, string(b))

	b, err = json.Marshal(Seats{Capacity: 10, Booked: 3, Remaining: 7, Known: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"capacity":10,"booked":3,"remaining":7}`, string(b))

	var s Seats
	require.NoError(t, json.Unmarshal([]byte(`{"capacity":10,"booked":null,"remaining":7}`), &s))
	assert.Equal(t, Seats{}, s)
}
