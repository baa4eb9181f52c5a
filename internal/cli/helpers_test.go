package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cst = time.FixedZone("CST", 8*3600)

func TestParseClock(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, cst)

	got, err := parseClock("08:05", now)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 10, 8, 5, 0, 0, cst)))

	got, err = parseClock("2025-03-09 23:30", now)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 3, 9, 23, 30, 0, 0, cst)))

	_, err = parseClock("8 o'clock", now)
	assert.Error(t, err)
}

func TestParseInterval_Rollover(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, cst)

	b, e, err := parseInterval("22:00", "02:00", now)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Hour, e.Sub(b))

	// A full date-time end is taken as written.
	b, e, err = parseInterval("22:00", "2025-03-10 21:00", now)
	require.NoError(t, err)
	assert.True(t, e.Before(b))
}

func TestParseInterval_BareEndFollowsDatedBegin(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, cst)

	b, e, err := parseInterval("2025-03-11 22:00", "01:00", now)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Hour, e.Sub(b))
	assert.Equal(t, 12, e.Day())

	b, e, err = parseInterval("2025-03-11 08:00", "10:30", now)
	require.NoError(t, err)
	assert.Equal(t, 150*time.Minute, e.Sub(b))
	assert.Equal(t, 11, e.Day())
}

func TestMatchPrefix(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz789"}

	got, err := matchPrefix("entry", "abc", ids)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	_, err = matchPrefix("entry", "ab", ids)
	assert.ErrorContains(t, err, "ambiguous")

	_, err = matchPrefix("entry", "q", ids)
	assert.ErrorContains(t, err, "not found")

	_, err = matchPrefix("entry", "", ids)
	assert.Error(t, err)
}

func TestValidateClock(t *testing.T) {
	assert.NoError(t, validateClock("08:00"))
	assert.NoError(t, validateClock("2025-03-10 08:00"))
	assert.Error(t, validateClock("later"))
}
