package resample

import (
	"testing"
	"time"

	"ChartReview/internal/domain/models"
	"ChartReview/internal/domain/repository"
)

func minuteBars(start time.Time, ohlcv ...[5]float64) models.BarSeries {
	out := make(models.BarSeries, 0, len(ohlcv))
	for i, v := range ohlcv {
		out = append(out, models.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Minute),
			Open:      v[0],
			High:      v[1],
			Low:       v[2],
			Close:     v[3],
			Volume:    int64(v[4]),
		})
	}
	return out
}

func TestAggregateFiveMinute(t *testing.T) {
	start := time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC)
	bars := minuteBars(start,
		[5]float64{100.0, 100.5, 99.8, 100.2, 100},
		[5]float64{100.2, 100.8, 100.1, 100.6, 100},
		[5]float64{100.6, 101.0, 100.4, 100.9, 100},
		[5]float64{100.9, 101.2, 100.7, 101.1, 100},
		[5]float64{101.1, 101.5, 101.0, 101.3, 100},
	)

	got := Aggregate(bars, repository.TF5Min)
	if len(got) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(got))
	}
	b := got[0]
	if !b.Timestamp.Equal(start) {
		t.Errorf("label %v, want %v", b.Timestamp, start)
	}
	if b.Open != 100.0 || b.High != 101.5 || b.Low != 99.8 || b.Close != 101.3 {
		t.Errorf("ohlc wrong: %+v", b)
	}
	if b.Volume != 500 {
		t.Errorf("volume %d, want 500", b.Volume)
	}
}

func TestAggregateBucketBoundary(t *testing.T) {
	start := time.Date(2024, 1, 16, 9, 33, 0, 0, time.UTC)
	// 09:33, 09:34 land in the 09:30 bucket; 09:35 starts a new one.
	bars := minuteBars(start,
		[5]float64{1, 1, 1, 1, 10},
		[5]float64{2, 2, 2, 2, 10},
		[5]float64{3, 3, 3, 3, 10},
	)
	got := Aggregate(bars, repository.TF5Min)
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(got))
	}
	if got[0].Timestamp.Minute() != 30 || got[1].Timestamp.Minute() != 35 {
		t.Fatalf("bucket labels wrong: %v %v", got[0].Timestamp, got[1].Timestamp)
	}
	if got[0].Volume != 20 || got[1].Volume != 10 {
		t.Fatalf("bucket volumes wrong: %d %d", got[0].Volume, got[1].Volume)
	}
}

func TestAggregateEmptyBucketsDropped(t *testing.T) {
	bars := models.BarSeries{
		{Timestamp: time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC), Open: 1, High: 1, Low: 1, Close: 1, Volume: 1},
		{Timestamp: time.Date(2024, 1, 16, 10, 30, 0, 0, time.UTC), Open: 2, High: 2, Low: 2, Close: 2, Volume: 1},
	}
	got := Aggregate(bars, repository.TF15Min)
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets (gap dropped), got %d", len(got))
	}
}

func TestAggregateDaily(t *testing.T) {
	d1 := time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 17, 15, 59, 0, 0, time.UTC)
	bars := models.BarSeries{
		{Timestamp: d1, Open: 10, High: 12, Low: 9, Close: 11, Volume: 100},
		{Timestamp: d1.Add(time.Minute), Open: 11, High: 13, Low: 10, Close: 12, Volume: 100},
		{Timestamp: d2, Open: 12, High: 14, Low: 11, Close: 13, Volume: 100},
	}
	got := Aggregate(bars, repository.TF1Day)
	if len(got) != 2 {
		t.Fatalf("expected 2 daily bars, got %d", len(got))
	}
	if got[0].Close != 12 || got[0].Volume != 200 {
		t.Fatalf("first day wrong: %+v", got[0])
	}
	if got[0].Timestamp.Hour() != 0 {
		t.Fatalf("daily label should be midnight, got %v", got[0].Timestamp)
	}
}

func TestAggregatePassthrough(t *testing.T) {
	bars := minuteBars(time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC),
		[5]float64{1, 1, 1, 1, 1},
	)
	got := Aggregate(bars, repository.TF1Min)
	if len(got) != 1 || got[0] != bars[0] {
		t.Fatalf("1min should pass through unchanged")
	}
}

func TestAggregateEmptyAndInvalid(t *testing.T) {
	if got := Aggregate(nil, repository.TF5Min); len(got) != 0 {
		t.Fatalf("empty input should aggregate to empty")
	}
	bars := minuteBars(time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC), [5]float64{1, 1, 1, 1, 1})
	if got := Aggregate(bars, repository.Timeframe("bogus")); len(got) != 0 {
		t.Fatalf("invalid timeframe should aggregate to empty")
	}
}
