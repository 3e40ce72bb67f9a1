package usecase

import (
	"context"
	"strings"
	"time"

	"ChartReview/internal/domain/models"
	"ChartReview/internal/domain/repository"
	"ChartReview/internal/resample"
	"ChartReview/internal/session"
	xlogger "ChartReview/pkg/logger"
	xutil "ChartReview/pkg/util"
)

// quoteLookbackDays bounds the history scanned when deriving a quote from
// bars. A week always spans at least two trading days outside long closures.
const quoteLookbackDays = 7

// QuotesUseCase derives last-price quotes from recent bar history and
// exposes the direct live-quote path.
type QuotesUseCase struct {
	cache    repository.SegmentStore
	provider *ProviderAdapter
	logger   *xlogger.Logger

	// now is replaceable for tests.
	now func() time.Time
}

// NewQuotesUseCase builds the use case. cache and provider may be nil.
func NewQuotesUseCase(cache repository.SegmentStore, provider *ProviderAdapter, logger *xlogger.Logger) *QuotesUseCase {
	return &QuotesUseCase{
		cache:    cache,
		provider: provider,
		logger:   logger,
		now:      func() time.Time { return session.ToLocalNaive(time.Now()) },
	}
}

// DeriveQuote computes a quote from a 1-minute series by resampling to daily
// and comparing the last two daily closes. Fewer than two daily bars is not
// enough to state a change, so no quote is derived.
func DeriveQuote(s models.BarSeries) (models.Quote, bool) {
	daily := resample.Aggregate(s, repository.TF1Day)
	if len(daily) < 2 {
		return models.Quote{}, false
	}
	last := daily[len(daily)-1]
	prev := daily[len(daily)-2]

	q := models.Quote{
		Price:     models.Round2(last.Close),
		PrevClose: models.Round2(prev.Close),
		Volume:    last.Volume,
	}
	q.Change = models.Round2(q.Price - q.PrevClose)
	if q.PrevClose != 0 {
		q.ChangePct = models.Round2(q.Change / q.PrevClose * 100)
	}
	return q, true
}

// Quotes derives quotes for each symbol from the last week of bars, cache
// first, provider as fallback. Symbols with insufficient history are absent
// from the result.
func (uc *QuotesUseCase) Quotes(ctx context.Context, symbols []string) map[string]models.Quote {
	end := xutil.DateOf(uc.now())
	start := end.AddDate(0, 0, -quoteLookbackDays)

	out := make(map[string]models.Quote, len(symbols))
	for _, sym := range symbols {
		up := strings.ToUpper(strings.TrimSpace(sym))
		if up == "" {
			continue
		}

		source := models.QuoteSourceCache
		var series models.BarSeries
		if uc.cache != nil {
			series = uc.cache.LoadRange(ctx, up, start, end)
		}
		if len(series) == 0 && uc.provider != nil {
			series = uc.provider.LoadRange(ctx, up, start, end)
			source = models.QuoteSourceLive
		}

		q, ok := DeriveQuote(series)
		if !ok {
			if uc.logger != nil {
				uc.logger.Debug("not enough history for quote", xlogger.String("symbol", up))
			}
			continue
		}
		q.Source = source
		out[up] = q
	}
	return out
}

// LiveQuotes answers quotes straight from the provider chain, bypassing bar
// history entirely.
func (uc *QuotesUseCase) LiveQuotes(ctx context.Context, symbols []string) map[string]models.Quote {
	if uc.provider == nil {
		return map[string]models.Quote{}
	}
	return uc.provider.LiveQuotes(ctx, symbols)
}
