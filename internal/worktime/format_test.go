package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2025, 3, 7, 8, 5, 9, 0, shanghai)

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"default pattern", "", "2025-03-07 08:05"},
		{"explicit default", DefaultPattern, "2025-03-07 08:05"},
		{"date only", "YYYY-MM-DD", "2025-03-07"},
		{"with seconds", "YYYY-MM-DD HH:mm:ss", "2025-03-07 08:05:09"},
		{"time only", "HH:mm", "08:05"},
		{"first occurrence only", "mm mm", "05 mm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateTime(ts, tt.pattern))
		})
	}
}

func TestFormatDateTime_ZeroTime(t *testing.T) {
	assert.Equal(t, "", FormatDateTime(time.Time{}, ""))
	assert.Equal(t, "", FormatDateTime(time.Time{}, "YYYY-MM-DD"))
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2025-03-07 08:05", shanghai)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 7, 8, 5, 0, 0, shanghai)))

	got, err = ParseDateTime(" 2025-03-07 23:59:30 ", shanghai)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Second())

	got, err = ParseDateTime("2025-03-07T08:05:00+08:00", nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 7, 8, 5, 0, 0, shanghai)))

	_, err = ParseDateTime("07/03/2025", shanghai)
	assert.Error(t, err)
}

func TestParseDateTime_RoundTripsFormat(t *testing.T) {
	ts := time.Date(2025, 12, 31, 23, 30, 0, 0, shanghai)
	got, err := ParseDateTime(FormatDateTime(ts, "YYYY-MM-DD HH:mm:ss"), shanghai)
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))
}

func TestExplain(t *testing.T) {
	b := Explain(clock(0, 11, 30, 0), clock(0, 14, 0, 0))
	assert.Equal(t, 150, b.RawMin)
	assert.Equal(t, 60, b.LaborMin)
	assert.Equal(t, 90, b.RestMin())
	assert.False(t, b.LunchOnly)
	assert.Empty(t, b.Contained)
	require.Len(t, b.Overlaps, 3)
	assert.Equal(t, RestLunch, b.Overlaps[0].Period.Name)

	b = Explain(clock(0, 12, 10, 0), clock(0, 13, 0, 0))
	assert.True(t, b.LunchOnly)
	assert.Equal(t, 50, b.LaborMin)
	assert.Empty(t, b.Overlaps)

	b = Explain(clock(0, 23, 45, 0), clock(1, 0, 15, 0))
	assert.Equal(t, RestNight, b.Contained)
	assert.Equal(t, 0, b.LaborMin)

	b = Explain(clock(0, 10, 0, 0), clock(0, 9, 0, 0))
	assert.Equal(t, 0, b.RawMin)
	assert.Equal(t, 0, b.LaborMin)
}
