package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	min, err := ParseTimeOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, min)

	min, err = ParseTimeOfDay("10:30")
	require.NoError(t, err)
	assert.Equal(t, 630, min)

	min, err = ParseTimeOfDay("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, min)

	for _, bad := range []string{"", "24:00", "10:60", "9am", "10:30:00"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2026-03-14")
	assert.NoError(t, err)

	for _, bad := range []string{"", "14-03-2026", "2026-13-01", "2026-03-14T00:00"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{"identical windows", 600, 660, 600, 660, true},
		{"partial overlap", 600, 660, 630, 690, true},
		{"contained", 600, 720, 630, 660, true},
		{"back to back", 600, 660, 660, 720, false},
		{"back to back reversed", 660, 720, 600, 660, false},
		{"disjoint", 600, 660, 720, 780, false},
		{"one minute shared", 600, 661, 660, 720, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestCombineDateTime(t *testing.T) {
	at, err := CombineDateTime("2026-03-14", "10:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC), at)

	_, err = CombineDateTime("2026-03-14", "25:00", time.UTC)
	assert.Error(t, err)
}

func TestMinutesOfDay(t *testing.T) {
	at := time.Date(2026, 3, 14, 10, 30, 59, 0, time.UTC)
	assert.Equal(t, 630, MinutesOfDay(at))
}
