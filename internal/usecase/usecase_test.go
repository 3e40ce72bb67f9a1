package usecase

import (
	"context"
	"errors"
	"time"

	"ChartReview/internal/domain/models"
)

// Shared test doubles for the use case layer.

type fakeCache struct {
	series  map[string]models.BarSeries
	symbols []string
	calls   int
}

func (f *fakeCache) LoadRange(_ context.Context, symbol string, start, end time.Time) models.BarSeries {
	f.calls++
	var out models.BarSeries
	for _, b := range f.series[symbol] {
		if b.Timestamp.Before(start) || b.Timestamp.After(end.Add(24*time.Hour)) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (f *fakeCache) ListSymbols() []string { return f.symbols }

type fakeSource struct {
	bars      []models.Bar
	err       error
	calls     int
	lastStart time.Time
	lastEnd   time.Time
}

func (f *fakeSource) GetBars(_ context.Context, _ string, start, end time.Time) ([]models.Bar, error) {
	f.calls++
	f.lastStart, f.lastEnd = start, end
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Bar
	for _, b := range f.bars {
		if b.Timestamp.Before(start) || b.Timestamp.After(end.Add(24*time.Hour)) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeQuoteSource struct {
	name  string
	quote models.Quote
	err   error
	calls int
}

func (f *fakeQuoteSource) Name() string { return f.name }

func (f *fakeQuoteSource) LatestQuote(context.Context, string) (models.Quote, error) {
	f.calls++
	if f.err != nil {
		return models.Quote{}, f.err
	}
	return f.quote, nil
}

var errUnavailable = errors.New("unavailable")

// sessionBar builds an in-session naive 1-minute bar.
func sessionBar(y int, m time.Month, d, hh, mm int, px float64, vol int64) models.Bar {
	return models.Bar{
		Timestamp: time.Date(y, m, d, hh, mm, 0, 0, time.UTC),
		Open:      px, High: px, Low: px, Close: px,
		Volume: vol,
	}
}
