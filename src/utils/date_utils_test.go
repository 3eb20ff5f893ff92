package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"iso date", "2023-01-05", time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"iso datetime", "2023-01-05 11:30:00", time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"rfc3339", "2023-01-05T11:30:00Z", time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"zone offset no colon", "2023-01-05T11:30:00-0500", time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"us slash", "02/01/2023", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), true},
		{"compact", "20230105", time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"padded", "  2023-01-05  ", time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"symbol", "AAPL", time.Time{}, false},
		{"plain number", "10.5", time.Time{}, false},
		{"n/a", "N/A", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFlexibleDate(tt.input)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)
	b := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 27, DaysBetween(a, b))
	assert.Equal(t, 27, DaysBetween(b, a), "span is absolute regardless of order")
	assert.Equal(t, 0, DaysBetween(a, a))
}
