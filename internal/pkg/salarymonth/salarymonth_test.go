package salarymonth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestKeyFor_StartDayBoundary(t *testing.T) {
	t.Parallel()

	// Day before the start day belongs to the previous window.
	assert.Equal(t, Key("2025_11"), KeyFor(day(2025, time.December, 5), 6))
	assert.Equal(t, Key("2025_12"), KeyFor(day(2025, time.December, 6), 6))
	assert.Equal(t, Key("2025_12"), KeyFor(day(2025, time.December, 31), 6))
}

func TestKeyFor_YearRollover(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Key("2024_12"), KeyFor(day(2025, time.January, 3), 6))
	assert.Equal(t, Key("2025_01"), KeyFor(day(2025, time.January, 6), 6))
}

func TestRange(t *testing.T) {
	t.Parallel()

	start, end := Key("2025_12").Range(6)
	assert.Equal(t, day(2025, time.December, 6), start)
	assert.Equal(t, day(2026, time.January, 5), end)

	// December window crossing into January keeps the key's year.
	start, end = Key("2025_02").Range(6)
	assert.Equal(t, day(2025, time.February, 6), start)
	assert.Equal(t, day(2025, time.March, 5), end)
}

func TestRangeContainsKeyForDate(t *testing.T) {
	t.Parallel()

	// For every date and start day, the derived range contains the date.
	for startDay := 1; startDay <= 28; startDay++ {
		d := day(2025, time.January, 1)
		for d.Year() == 2025 {
			key := KeyFor(d, startDay)
			start, end := key.Range(startDay)
			assert.False(t, d.Before(start) || d.After(end),
				"date %s outside range [%s, %s] for startDay=%d",
				FormatDay(d), FormatDay(start), FormatDay(end), startDay)
			d = d.AddDate(0, 0, 11)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	k, err := Parse("2025_07")
	require.NoError(t, err)
	assert.Equal(t, Key("2025_07"), k)

	for _, bad := range []string{"2025-07", "2025_13", "2025_0", "25_07", "2025_7", ""} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, "input %q", bad)
	}
}

func TestSundaysIn(t *testing.T) {
	t.Parallel()

	// December 2025: Sundays fall on 7, 14, 21, 28.
	sundays := SundaysIn(day(2025, time.December, 1), day(2025, time.December, 31))
	require.Len(t, sundays, 4)
	assert.Equal(t, day(2025, time.December, 7), sundays[0])
	assert.Equal(t, day(2025, time.December, 28), sundays[3])

	// Range starting on a Sunday includes it.
	sundays = SundaysIn(day(2025, time.December, 7), day(2025, time.December, 7))
	require.Len(t, sundays, 1)

	// Empty when the range holds no Sunday.
	assert.Empty(t, SundaysIn(day(2025, time.December, 1), day(2025, time.December, 6)))
}

func TestDay(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("PKT", 5*3600)
	stamp := time.Date(2025, time.March, 9, 23, 45, 0, 0, loc)
	assert.Equal(t, day(2025, time.March, 9), Day(stamp))
}
