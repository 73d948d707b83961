package menu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextFourDays(t *testing.T) {
	// A Monday.
	now := time.Date(2024, 1, 1, 15, 30, 0, 0, time.Local)

	days := NextFourDays(now)
	require.Len(t, days, 4)

	assert.Equal(t, "Tomorrow", days[0].DayName)
	assert.Equal(t, "2024-01-02", days[0].Date)
	assert.Equal(t, "Wed", days[1].DayName)
	assert.Equal(t, "Thu", days[2].DayName)
	assert.Equal(t, "Fri", days[3].DayName)

	for i := 1; i < len(days); i++ {
		prev, err := time.Parse("2006-01-02", days[i-1].Date)
		require.NoError(t, err)
		cur, err := time.Parse("2006-01-02", days[i].Date)
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, cur.Sub(prev), "dates increase by exactly one day")
	}
}

func TestNextFourDaysCrossesMonthEnd(t *testing.T) {
	now := time.Date(2024, 1, 30, 9, 0, 0, 0, time.Local)

	days := NextFourDays(now)
	require.Len(t, days, 4)
	assert.Equal(t, "2024-01-31", days[0].Date)
	assert.Equal(t, "2024-02-01", days[1].Date)
	assert.Equal(t, "Feb 1", days[1].DateDisplay)
}

func TestAvailableDeliveryDatesFiltersSkipDates(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)

	days := AvailableDeliveryDates(now, []string{"2024-01-03", "2024-01-05"})
	require.Len(t, days, 2)
	assert.Equal(t, "2024-01-02", days[0].Date)
	assert.Equal(t, "2024-01-04", days[1].Date)
}

func TestAvailableDeliveryDatesNoSkips(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	assert.Len(t, AvailableDeliveryDates(now, nil), 4)
}

func TestFormatDeliveryDate(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)

	assert.Equal(t, "Tomorrow", FormatDeliveryDate("2024-01-02", now))
	assert.Equal(t, "Thursday, Jan 4", FormatDeliveryDate("2024-01-04", now))
	assert.Equal(t, "not-a-date", FormatDeliveryDate("not-a-date", now))
}
