// Package alpaca adapts the Alpaca market-data API to the bar and quote
// source capabilities. All timestamps leaving this package are canonical
// tz-naive exchange-local time.
package alpaca

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"golang.org/x/time/rate"

	"ChartReview/internal/domain/models"
	"ChartReview/internal/session"
	xlogger "ChartReview/pkg/logger"
)

const dataFeed = "sip"

// Client wraps one authenticated Alpaca market-data connection. It serves
// both 1-minute history and the live quote chain (snapshot first, NBBO
// quote as fallback).
type Client struct {
	md      *marketdata.Client
	limiter *rate.Limiter
	logger  *xlogger.Logger
}

// New builds a client. An empty baseURL uses Alpaca's production data host.
func New(apiKey, apiSecret, baseURL string, logger *xlogger.Logger) *Client {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if baseURL != "" {
		opts.BaseURL = baseURL
	}
	return &Client{
		md: marketdata.NewClient(opts),
		// Free-tier data keys allow 200 requests/min. Stay under it.
		limiter: rate.NewLimiter(rate.Limit(3), 5),
		logger:  logger,
	}
}

// GetBars fetches 1-minute bars for the closed calendar-date range
// [start, end] and converts them to naive local time. Alpaca's End is
// exclusive, so the range upper bound already points past the last second
// of the end date.
func (c *Client) GetBars(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	lo, hi := session.InstantRange(start, end)
	raw, err := c.md.GetBars(strings.ToUpper(symbol), marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneMin,
		Start:     lo,
		End:       hi,
		Feed:      dataFeed,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca bars %s: %w", symbol, err)
	}

	bars := make([]models.Bar, 0, len(raw))
	for _, b := range raw {
		bars = append(bars, models.Bar{
			Timestamp: session.ToLocalNaive(b.Timestamp),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    int64(b.Volume),
		})
	}
	if c.logger != nil {
		c.logger.Debug("fetched provider bars",
			xlogger.String("symbol", symbol),
			xlogger.Int("bars", len(bars)),
		)
	}
	return bars, nil
}

// SnapshotSource answers live quotes from the full snapshot endpoint, which
// carries last trade, current daily bar, and previous daily close in one call.
type SnapshotSource struct {
	c *Client
}

// NewSnapshotSource wraps c as the preferred quote source.
func NewSnapshotSource(c *Client) *SnapshotSource {
	return &SnapshotSource{c: c}
}

func (s *SnapshotSource) Name() string { return "snapshot" }

// LatestQuote builds a quote from the snapshot's last trade. Change fields
// are populated only when the previous daily close is present.
func (s *SnapshotSource) LatestQuote(ctx context.Context, symbol string) (models.Quote, error) {
	if err := s.c.limiter.Wait(ctx); err != nil {
		return models.Quote{}, err
	}
	snap, err := s.c.md.GetSnapshot(strings.ToUpper(symbol), marketdata.GetSnapshotRequest{Feed: dataFeed})
	if err != nil {
		return models.Quote{}, fmt.Errorf("alpaca snapshot %s: %w", symbol, err)
	}
	if snap == nil || snap.LatestTrade == nil || snap.LatestTrade.Price <= 0 {
		return models.Quote{}, fmt.Errorf("snapshot for %s has no last trade", symbol)
	}

	q := models.Quote{
		Price:  models.Round2(snap.LatestTrade.Price),
		Source: models.QuoteSourceLive,
	}
	if snap.PrevDailyBar != nil && snap.PrevDailyBar.Close > 0 {
		q.PrevClose = models.Round2(snap.PrevDailyBar.Close)
		q.Change = models.Round2(q.Price - q.PrevClose)
		q.ChangePct = models.Round2(q.Change / q.PrevClose * 100)
	}
	if snap.DailyBar != nil {
		q.Volume = int64(snap.DailyBar.Volume)
	}
	return q, nil
}

// QuoteSource answers live quotes from the lighter NBBO endpoint. No change
// or volume information, price only. Used when the snapshot fails.
type QuoteSource struct {
	c *Client
}

// NewQuoteSource wraps c as the fallback quote source.
func NewQuoteSource(c *Client) *QuoteSource {
	return &QuoteSource{c: c}
}

func (s *QuoteSource) Name() string { return "quote" }

func (s *QuoteSource) LatestQuote(ctx context.Context, symbol string) (models.Quote, error) {
	if err := s.c.limiter.Wait(ctx); err != nil {
		return models.Quote{}, err
	}
	nbbo, err := s.c.md.GetLatestQuote(strings.ToUpper(symbol), marketdata.GetLatestQuoteRequest{Feed: dataFeed})
	if err != nil {
		return models.Quote{}, fmt.Errorf("alpaca quote %s: %w", symbol, err)
	}
	if nbbo == nil {
		return models.Quote{}, fmt.Errorf("no quote for %s", symbol)
	}
	price := nbbo.AskPrice
	if price <= 0 {
		price = nbbo.BidPrice
	}
	if price <= 0 {
		return models.Quote{}, fmt.Errorf("quote for %s has no usable price", symbol)
	}
	return models.Quote{
		Price:  models.Round2(price),
		Source: models.QuoteSourceLive,
	}, nil
}
