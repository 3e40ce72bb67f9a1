package repository

import (
	"context"
	"time"

	"ChartReview/internal/domain/models"
)

// SegmentStore reads segmented 1-minute bar files from the on-disk cache.
// Missing symbols or empty ranges yield an empty series, never an error.
type SegmentStore interface {
	LoadRange(ctx context.Context, symbol string, start, end time.Time) models.BarSeries
	ListSymbols() []string
}

// BarSource fetches 1-minute bars from an external market-data provider.
type BarSource interface {
	GetBars(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error)
}

// QuoteSource answers a best-effort live price lookup for one symbol.
// Implementations form a capability-probing chain (snapshot, then quote).
type QuoteSource interface {
	Name() string
	LatestQuote(ctx context.Context, symbol string) (models.Quote, error)
}

// StateStore persists UI state key/value pairs across devices.
type StateStore interface {
	Load(key string) (interface{}, bool)
	LoadAll() map[string]interface{}
	Save(key string, value interface{}) error
	Delete(key string) error
}

// Metrics records operational counters and latencies.
type Metrics interface {
	RecordBarsServed(symbol, timeframe string, n int)
	RecordProviderCall(tier string)
	RecordSegmentsRead(n int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
