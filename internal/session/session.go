// Package session defines the canonical timestamp convention and the fixed
// intraday session window.
//
// Canonical tz-naive local time: the wall-clock fields of the exchange zone
// (America/New_York), stored in a UTC-located time.Time. A UTC location marks
// a value as already naive; anything else is a real zoned instant.
package session

import (
	"time"

	"ChartReview/internal/domain/models"
)

// Session window: pre-market open through extended-hours close, exchange
// local time. Fixed by contract, not configurable.
const (
	sessionOpenMinute  = 4 * 60
	sessionCloseMinute = 20 * 60
)

var marketZone = loadMarketZone()

func loadMarketZone() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// No tzdata available: fall back to fixed EST. DST edges will be
		// off by an hour until the zone database is installed.
		return time.FixedZone("EST", -5*3600)
	}
	return loc
}

// ToLocalNaive converts a zoned instant to canonical tz-naive local time.
// Always converts; only call with real instants (e.g. provider timestamps).
func ToLocalNaive(t time.Time) time.Time {
	lt := t.In(marketZone)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), lt.Hour(), lt.Minute(), lt.Second(), lt.Nanosecond(), time.UTC)
}

// NormalizeNaive passes already-naive values through unchanged and converts
// zoned ones. Used where inputs may or may not carry a zone, such as cache
// segments written under different source zones over time.
func NormalizeNaive(t time.Time) time.Time {
	if t.Location() == time.UTC {
		return t
	}
	return ToLocalNaive(t)
}

// InstantRange converts a closed naive date range into real zoned instants
// covering those calendar days, for providers that want absolute times.
func InstantRange(start, end time.Time) (time.Time, time.Time) {
	lo := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, marketZone)
	hi := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, marketZone)
	return lo, hi
}

// InSession reports whether the local time of day falls in [04:00, 20:00).
func InSession(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	return m >= sessionOpenMinute && m < sessionCloseMinute
}

// FilterSession retains only bars inside the session window.
func FilterSession(s models.BarSeries) models.BarSeries {
	out := s[:0:0]
	for _, b := range s {
		if InSession(b.Timestamp) {
			out = append(out, b)
		}
	}
	return out
}
