package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSelectableWindowBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 30, 0, 0, time.Local)

	cases := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"today", time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), true},
		{"last day of window", time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local), true},
		{"yesterday", time.Date(2025, 5, 31, 0, 0, 0, 0, time.Local), false},
		{"one past the window", time.Date(2025, 6, 17, 0, 0, 0, 0, time.Local), false},
		{"mid window", time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsSelectable(now, tc.day))
		})
	}
}

func TestIsSelectableIgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2025, 6, 1, 23, 59, 0, 0, time.Local)
	lastDay := time.Date(2025, 6, 16, 23, 0, 0, 0, time.Local)
	assert.True(t, IsSelectable(now, lastDay))
}

func TestWindowBounds(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local)
	first, last := WindowBounds(now)
	assert.Equal(t, "2025-06-01", FormatISODay(first))
	assert.Equal(t, "2025-06-16", FormatISODay(last))
}

func TestParseISODay(t *testing.T) {
	day, err := ParseISODay("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", FormatISODay(day))

	_, err = ParseISODay("10/06/2025")
	assert.Error(t, err)

	_, err = ParseISODay("")
	assert.Error(t, err)
}

func TestSlotLabel(t *testing.T) {
	assert.Equal(t, "18:00 – 19:00", SlotLabel("18:00", "19:00"))
}

func TestISODateTime(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	got := ISODateTime(day)
	parsed, err := time.Parse(time.RFC3339, got)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", FormatISODay(parsed))
}
