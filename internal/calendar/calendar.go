// Package calendar answers "is this date a trading day" for the US equity
// market. Pure lookup, no I/O.
package calendar

import (
	"time"

	"ChartReview/internal/domain/models"
)

// NYSE full-session closures. Dates outside the covered years fall back to a
// weekday-only answer; that degraded mode is accepted, not an error.
var holidays = map[string]struct{}{
	// 2023
	"2023-01-02": {}, "2023-01-16": {}, "2023-02-20": {}, "2023-04-07": {},
	"2023-05-29": {}, "2023-06-19": {}, "2023-07-04": {}, "2023-09-04": {},
	"2023-11-23": {}, "2023-12-25": {},
	// 2024
	"2024-01-01": {}, "2024-01-15": {}, "2024-02-19": {}, "2024-03-29": {},
	"2024-05-27": {}, "2024-06-19": {}, "2024-07-04": {}, "2024-09-02": {},
	"2024-11-28": {}, "2024-12-25": {},
	// 2025 (includes the Jan 9 national day of mourning)
	"2025-01-01": {}, "2025-01-09": {}, "2025-01-20": {}, "2025-02-17": {},
	"2025-04-18": {}, "2025-05-26": {}, "2025-06-19": {}, "2025-07-04": {},
	"2025-09-01": {}, "2025-11-27": {}, "2025-12-25": {},
	// 2026
	"2026-01-01": {}, "2026-01-19": {}, "2026-02-16": {}, "2026-04-03": {},
	"2026-05-25": {}, "2026-06-19": {}, "2026-07-03": {}, "2026-09-07": {},
	"2026-11-26": {}, "2026-12-25": {},
}

// IsTradingDay reports whether the date of t is a trading day. Saturdays and
// Sundays are never trading days; known holidays are excluded for covered
// years.
func IsTradingDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := holidays[t.Format("2006-01-02")]
	return !holiday
}

// FilterTradingDays drops bars falling on non-trading days.
func FilterTradingDays(s models.BarSeries) models.BarSeries {
	out := s[:0:0]
	for _, b := range s {
		if IsTradingDay(b.Timestamp) {
			out = append(out, b)
		}
	}
	return out
}
