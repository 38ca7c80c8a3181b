// Package aggregate buckets mirrored booking events into the calendar
// views served by the dashboard.
package aggregate

import (
	"time"

	"github.com/samber/lo"

	"roomsync/entity"
)

// ByMonth returns twelve buckets keyed by the first day of each month of
// the year, counting events by the month their night of stay falls in.
func ByMonth(events []entity.Event, year int) map[string]int {
	buckets := make(map[string]int, 12)
	for month := time.January; month <= time.December; month++ {
		buckets[entity.NewDate(year, month, 1).String()] = 0
	}

	counts := lo.CountValuesBy(events, func(event entity.Event) string {
		return entity.NewDate(year, event.NightOfStay.Month(), 1).String()
	})
	for bucket, n := range counts {
		if _, ok := buckets[bucket]; ok {
			buckets[bucket] += n
		}
	}

	return buckets
}

// ByDay returns one bucket per calendar day of the year (365 or 366),
// counting events whose night of stay equals that day.
func ByDay(events []entity.Event, year int) map[string]int {
	buckets := make(map[string]int, 366)
	end := entity.NewDate(year, time.December, 31)
	for day := entity.NewDate(year, time.January, 1); !day.After(end.Time); day.Time = day.AddDate(0, 0, 1) {
		buckets[day.String()] = 0
	}

	counts := lo.CountValuesBy(events, func(event entity.Event) string {
		return event.NightOfStay.String()
	})
	for bucket, n := range counts {
		if _, ok := buckets[bucket]; ok {
			buckets[bucket] += n
		}
	}

	return buckets
}
