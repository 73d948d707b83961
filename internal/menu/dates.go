package menu

import (
	"time"

	"github.com/ashrithps/BrekkieBowlz/internal/models"
)

const isoDate = "2006-01-02"

// DeliveryTimeSlot is the single slot all orders are delivered in.
const DeliveryTimeSlot = "9:00 AM - 10:00 AM"

// NextFourDays returns exactly four delivery day entries starting
// tomorrow. The first is labeled "Tomorrow", the rest carry the short
// weekday name. No skip-date filtering happens here; see
// AvailableDeliveryDates for the customer-facing list.
func NextFourDays(now time.Time) []models.DeliveryDate {
	days := make([]models.DeliveryDate, 0, 4)
	for offset := 1; offset <= 4; offset++ {
		date := now.AddDate(0, 0, offset)

		dayName := date.Weekday().String()[:3]
		if offset == 1 {
			dayName = "Tomorrow"
		}
		dateDisplay := date.Format("Jan 2")

		days = append(days, models.DeliveryDate{
			Date:        date.Format(isoDate),
			Label:       dayName + "\n" + dateDisplay,
			DayName:     dayName,
			DateDisplay: dateDisplay,
		})
	}
	return days
}

// AvailableDeliveryDates is the four-day window with skip dates removed,
// so the result may hold fewer than four entries. This filtered variant is
// what handlers serve; the store never delivers past the window.
func AvailableDeliveryDates(now time.Time, skipDates []string) []models.DeliveryDate {
	skip := make(map[string]struct{}, len(skipDates))
	for _, d := range skipDates {
		skip[d] = struct{}{}
	}

	var days []models.DeliveryDate
	for _, day := range NextFourDays(now) {
		if _, skipped := skip[day.Date]; skipped {
			continue
		}
		days = append(days, day)
	}
	return days
}

// FormatDeliveryDate renders an ISO date for humans: "Tomorrow" when it is
// tomorrow, otherwise e.g. "Saturday, Jan 3".
func FormatDeliveryDate(date string, now time.Time) string {
	parsed, err := time.ParseInLocation(isoDate, date, now.Location())
	if err != nil {
		return date
	}
	if parsed.Format(isoDate) == now.AddDate(0, 0, 1).Format(isoDate) {
		return "Tomorrow"
	}
	return parsed.Weekday().String() + ", " + parsed.Format("Jan 2")
}
