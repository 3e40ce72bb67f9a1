package usecase

import (
	"context"
	"sync"
	"time"

	"ChartReview/internal/domain/models"
	"ChartReview/internal/domain/repository"
	xlogger "ChartReview/pkg/logger"
)

// reviewTimeframe is the chart resolution used on the trade review page.
const reviewTimeframe = repository.Timeframe("5min")

// ReviewUseCase serves the trade review page: the trade log, its summary
// stats, and per-trade-date bars. Bars are memoized per date for the life of
// the server instance, since the review set is fixed after load.
type ReviewUseCase struct {
	trades  []models.TradeRecord
	summary models.TradeSummary
	bars    *BarsUseCase
	logger  *xlogger.Logger

	mu         sync.Mutex
	barsByDate map[string][]models.WireBar
}

// NewReviewUseCase builds the use case over an already-loaded trade log.
// bars may be nil, in which case per-date bar lookups return empty.
func NewReviewUseCase(trades []models.TradeRecord, bars *BarsUseCase, logger *xlogger.Logger) *ReviewUseCase {
	return &ReviewUseCase{
		trades:     trades,
		summary:    models.Summarize(trades),
		bars:       bars,
		logger:     logger,
		barsByDate: make(map[string][]models.WireBar),
	}
}

// Trades returns the loaded trade log. Never nil.
func (uc *ReviewUseCase) Trades() []models.TradeRecord {
	if uc.trades == nil {
		return []models.TradeRecord{}
	}
	return uc.trades
}

// Summary returns aggregate stats over the trade log.
func (uc *ReviewUseCase) Summary() models.TradeSummary {
	return uc.summary
}

// BarsForDate returns review-resolution bars for the symbol traded on the
// given date. When no trade matches the date, the first trade's symbol is
// used so the page can still render a chart. Results are memoized.
func (uc *ReviewUseCase) BarsForDate(ctx context.Context, date string) []models.WireBar {
	uc.mu.Lock()
	if cached, ok := uc.barsByDate[date]; ok {
		uc.mu.Unlock()
		return cached
	}
	uc.mu.Unlock()

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return []models.WireBar{}
	}

	symbol := uc.symbolForDate(date)
	if symbol == "" || uc.bars == nil {
		return []models.WireBar{}
	}

	bars := uc.bars.Fetch(ctx, symbol, day, day, reviewTimeframe)
	if uc.logger != nil {
		uc.logger.Debug("loaded review bars",
			xlogger.String("symbol", symbol),
			xlogger.String("date", date),
			xlogger.Int("bars", len(bars)),
		)
	}

	uc.mu.Lock()
	uc.barsByDate[date] = bars
	uc.mu.Unlock()
	return bars
}

func (uc *ReviewUseCase) symbolForDate(date string) string {
	for _, t := range uc.trades {
		if t.Date == date {
			return t.Symbol
		}
	}
	if len(uc.trades) > 0 {
		return uc.trades[0].Symbol
	}
	return ""
}
