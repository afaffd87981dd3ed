package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC on the 14th is 01:30 on the 15th in IST.
	ts := time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)

	got := StartOfDay(ts, loc)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, loc), got)
}

func TestSameDayAtMidnightBoundary(t *testing.T) {
	loc := time.UTC
	lastSecond := time.Date(2026, 10, 14, 23, 59, 59, 0, loc)
	midnight := time.Date(2026, 10, 15, 0, 0, 0, 0, loc)

	assert.False(t, SameDay(lastSecond, midnight, loc))
	assert.True(t, SameDay(midnight, midnight.Add(23*time.Hour), loc))
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	got, err := ParseDate("2026-10-20", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, loc), got)

	got, err = ParseDate("2026-10-20T10:30:00Z", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 10, 20, 10, 30, 0, 0, time.UTC)))

	_, err = ParseDate("20/10/2026", loc)
	assert.Error(t, err)
	_, err = ParseDate("  ", loc)
	assert.Error(t, err)
}

func TestArchiveDir(t *testing.T) {
	y, m, d := ArchiveDir(time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, []string{"2026", "03", "07"}, []string{y, m, d})
}
