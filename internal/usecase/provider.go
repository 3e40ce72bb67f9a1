package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ChartReview/internal/calendar"
	"ChartReview/internal/domain/models"
	"ChartReview/internal/domain/repository"
	"ChartReview/internal/session"
	xlogger "ChartReview/pkg/logger"
)

// ValidatedSource wraps a bar source with request validation. The wrapped
// call is only made for well-formed requests over real trading days.
type ValidatedSource struct {
	src repository.BarSource
}

// NewValidatedSource wraps src.
func NewValidatedSource(src repository.BarSource) *ValidatedSource {
	return &ValidatedSource{src: src}
}

func (v *ValidatedSource) GetBars(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, errors.New("empty symbol")
	}
	if start.After(end) {
		return nil, fmt.Errorf("start %s after end %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	hasTradingDay := false
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if calendar.IsTradingDay(d) {
			hasTradingDay = true
			break
		}
	}
	if !hasTradingDay {
		return nil, errors.New("no trading days in range")
	}
	return v.src.GetBars(ctx, symbol, start, end)
}

// ProviderAdapter is the uniform live-data surface the orchestrator sees.
// Bar fetches go through the validated tier first and fall back to the raw
// source; quote lookups walk the source chain in order. Every provider call
// is bounded by the configured timeout. All failures degrade to empty
// results, never to request errors.
type ProviderAdapter struct {
	validated repository.BarSource
	raw       repository.BarSource
	quotes    []repository.QuoteSource
	timeout   time.Duration
	logger    *xlogger.Logger
	metrics   repository.Metrics
}

// NewProviderAdapter builds the adapter. quotes are tried in order.
func NewProviderAdapter(
	raw repository.BarSource,
	quotes []repository.QuoteSource,
	timeout time.Duration,
	logger *xlogger.Logger,
	metrics repository.Metrics,
) *ProviderAdapter {
	return &ProviderAdapter{
		validated: NewValidatedSource(raw),
		raw:       raw,
		quotes:    quotes,
		timeout:   timeout,
		logger:    logger,
		metrics:   metrics,
	}
}

// LoadRange fetches 1-minute bars for the closed date range [start, end],
// normalized, session-filtered, and trading-day-filtered. Returns an empty
// series when both tiers fail.
func (p *ProviderAdapter) LoadRange(ctx context.Context, symbol string, start, end time.Time) models.BarSeries {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	bars, err := p.validated.GetBars(ctx, symbol, start, end)
	if err == nil {
		p.record("validated")
		return p.prepare(bars)
	}
	if p.logger != nil {
		p.logger.Debug("validated bar fetch failed, trying raw tier",
			xlogger.String("symbol", symbol),
			xlogger.Error(err),
		)
	}

	bars, err = p.raw.GetBars(ctx, symbol, start, end)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("provider bar fetch failed",
				xlogger.String("symbol", symbol),
				xlogger.Error(err),
			)
		}
		if p.metrics != nil {
			p.metrics.RecordError("provider_bars")
		}
		return nil
	}
	p.record("raw")
	return p.prepare(bars)
}

func (p *ProviderAdapter) record(tier string) {
	if p.metrics != nil {
		p.metrics.RecordProviderCall(tier)
	}
}

// prepare applies the same hygiene the cache path gets. Sources already emit
// naive timestamps; NormalizeNaive keeps that a checked assumption.
func (p *ProviderAdapter) prepare(bars []models.Bar) models.BarSeries {
	series := make(models.BarSeries, 0, len(bars))
	for _, b := range bars {
		b.Timestamp = session.NormalizeNaive(b.Timestamp)
		series = append(series, b)
	}
	series = session.FilterSession(series)
	return calendar.FilterTradingDays(series)
}

// QuoteResult is the per-symbol outcome of one live quote lookup.
type QuoteResult struct {
	Symbol string
	Quote  models.Quote
	Err    error
}

// LiveQuote walks the quote chain for one symbol. The first source that
// returns a positive price wins.
func (p *ProviderAdapter) LiveQuote(ctx context.Context, symbol string) QuoteResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var lastErr error
	for _, src := range p.quotes {
		q, err := src.LatestQuote(ctx, symbol)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", src.Name(), err)
			continue
		}
		if q.Price <= 0 {
			lastErr = fmt.Errorf("%s: non-positive price", src.Name())
			continue
		}
		q.Source = models.QuoteSourceLive
		return QuoteResult{Symbol: symbol, Quote: q}
	}
	if lastErr == nil {
		lastErr = errors.New("no quote sources configured")
	}
	return QuoteResult{Symbol: symbol, Err: lastErr}
}

// LiveQuotes resolves each symbol independently. Symbols with no usable
// quote are absent from the result.
func (p *ProviderAdapter) LiveQuotes(ctx context.Context, symbols []string) map[string]models.Quote {
	out := make(map[string]models.Quote, len(symbols))
	for _, sym := range symbols {
		up := strings.ToUpper(strings.TrimSpace(sym))
		if up == "" {
			continue
		}
		res := p.LiveQuote(ctx, up)
		if res.Err != nil {
			if p.logger != nil {
				p.logger.Debug("live quote unavailable",
					xlogger.String("symbol", up),
					xlogger.Error(res.Err),
				)
			}
			if p.metrics != nil {
				p.metrics.RecordError("live_quote")
			}
			continue
		}
		out[up] = res.Quote
	}
	return out
}
