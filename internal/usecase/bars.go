package usecase

import (
	"context"
	"strings"
	"time"

	"ChartReview/internal/domain/models"
	"ChartReview/internal/domain/repository"
	"ChartReview/internal/resample"
	xlogger "ChartReview/pkg/logger"
	xutil "ChartReview/pkg/util"
)

// BarsUseCase answers chart bar requests: cache first, live provider for
// whatever the cache is missing, then resample and encode. Both the cache
// and the provider are optional; with neither configured every request
// yields an empty series.
type BarsUseCase struct {
	cache    repository.SegmentStore
	provider *ProviderAdapter
	logger   *xlogger.Logger
	metrics  repository.Metrics
}

// NewBarsUseCase builds the orchestrator. cache and provider may be nil.
func NewBarsUseCase(
	cache repository.SegmentStore,
	provider *ProviderAdapter,
	logger *xlogger.Logger,
	metrics repository.Metrics,
) *BarsUseCase {
	return &BarsUseCase{cache: cache, provider: provider, logger: logger, metrics: metrics}
}

// Fetch returns wire-ready bars for one symbol over the closed date range
// [start, end] at the requested timeframe. The result is never nil so an
// empty range serializes as a JSON array.
func (uc *BarsUseCase) Fetch(ctx context.Context, symbol string, start, end time.Time, tf repository.Timeframe) []models.WireBar {
	began := time.Now()
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	series := uc.load(ctx, symbol, start, end)
	if tf != repository.TF1Min {
		series = resample.Aggregate(series, tf)
	}
	bars := models.EncodeWire(series)

	if uc.metrics != nil {
		uc.metrics.RecordBarsServed(symbol, string(tf), len(bars))
		uc.metrics.RecordLatency("bars_fetch", time.Since(began).Seconds())
	}
	if uc.logger != nil {
		uc.logger.Debug("served bars",
			xlogger.String("symbol", symbol),
			xlogger.String("timeframe", string(tf)),
			xlogger.Int("bars", len(bars)),
		)
	}
	return bars
}

// FetchBatch resolves several symbols independently. One symbol's failure
// or empty range never affects the others.
func (uc *BarsUseCase) FetchBatch(ctx context.Context, symbols []string, start, end time.Time, tf repository.Timeframe) map[string][]models.WireBar {
	out := make(map[string][]models.WireBar, len(symbols))
	for _, sym := range symbols {
		up := strings.ToUpper(strings.TrimSpace(sym))
		if up == "" {
			continue
		}
		out[up] = uc.Fetch(ctx, up, start, end, tf)
	}
	return out
}

// Symbols lists the symbols present in the cache.
func (uc *BarsUseCase) Symbols() []string {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.ListSymbols()
}

// load assembles the 1-minute series: cached rows plus a provider tail for
// the dates past the cache's coverage. Coverage is judged at date
// granularity, so a partially cached final day counts as covered and its
// remainder is picked up by the next day's fetch.
func (uc *BarsUseCase) load(ctx context.Context, symbol string, start, end time.Time) models.BarSeries {
	var series models.BarSeries
	if uc.cache != nil {
		series = uc.cache.LoadRange(ctx, symbol, start, end)
	}
	if uc.provider == nil {
		return series
	}
	if len(series) == 0 {
		return uc.provider.LoadRange(ctx, symbol, start, end)
	}

	last, _ := series.Last()
	lastDate := xutil.DateOf(last.Timestamp)
	endDate := xutil.DateOf(end)
	if lastDate.Before(endDate) {
		tail := uc.provider.LoadRange(ctx, symbol, lastDate.AddDate(0, 0, 1), endDate)
		series = append(series, tail...)
	}
	return series
}
