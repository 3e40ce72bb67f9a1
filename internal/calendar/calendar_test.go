package calendar

import (
	"testing"
	"time"

	"ChartReview/internal/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsTradingDayWeekend(t *testing.T) {
	if IsTradingDay(date(2024, 1, 13)) { // Saturday
		t.Fatalf("Saturday should not be a trading day")
	}
	if IsTradingDay(date(2024, 1, 14)) { // Sunday
		t.Fatalf("Sunday should not be a trading day")
	}
}

func TestIsTradingDayHoliday(t *testing.T) {
	if IsTradingDay(date(2024, 1, 1)) {
		t.Fatalf("New Year's Day should not be a trading day")
	}
	if IsTradingDay(date(2025, 1, 9)) {
		t.Fatalf("2025-01-09 closure should not be a trading day")
	}
}

func TestIsTradingDayRegular(t *testing.T) {
	if !IsTradingDay(date(2024, 1, 16)) { // Tuesday
		t.Fatalf("regular Tuesday should be a trading day")
	}
}

func TestIsTradingDayOutsideTable(t *testing.T) {
	// Years beyond the table degrade to weekday-only.
	if !IsTradingDay(date(2030, 7, 4)) { // Thursday, would be a holiday
		t.Fatalf("uncovered year should fall back to weekday check")
	}
	if IsTradingDay(date(2030, 7, 6)) { // Saturday
		t.Fatalf("weekends stay excluded in uncovered years")
	}
}

func TestFilterTradingDays(t *testing.T) {
	bars := models.BarSeries{
		{Timestamp: time.Date(2024, 1, 12, 9, 30, 0, 0, time.UTC)}, // Friday
		{Timestamp: time.Date(2024, 1, 13, 9, 30, 0, 0, time.UTC)}, // Saturday
		{Timestamp: time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)}, // MLK Day
		{Timestamp: time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC)}, // Tuesday
	}
	got := FilterTradingDays(bars)
	if len(got) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(got))
	}
	if got[0].Timestamp.Day() != 12 || got[1].Timestamp.Day() != 16 {
		t.Fatalf("wrong bars kept: %v", got)
	}
}
