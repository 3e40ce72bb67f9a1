package di

import (
	"fmt"

	"ChartReview/internal/domain/models"
	"ChartReview/internal/domain/repository"
	"ChartReview/internal/handler/api"
	internalrepo "ChartReview/internal/repository"
	"ChartReview/internal/service/alpaca"
	"ChartReview/internal/usecase"
	"ChartReview/pkg/config"
	xhttp "ChartReview/pkg/http"
	applogger "ChartReview/pkg/logger"
	"ChartReview/pkg/metrics"
	"ChartReview/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Log.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Log.Format
	if format == "" {
		format = "console"
	}
	output := cfg.Log.Output
	if output == "" {
		output = "stdout"
	}
	l, err := applogger.New(&applogger.Config{Level: level, Format: format, Output: output})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSegmentStore creates the on-disk bar cache reader.
func ProvideSegmentStore(cfg *config.Config, l *applogger.Logger, m repository.Metrics) repository.SegmentStore {
	return internalrepo.NewSegmentStore(cfg.Data.CacheDir, l, m)
}

// ProvideStateStore creates the UI state persistence store.
func ProvideStateStore(cfg *config.Config) repository.StateStore {
	return internalrepo.NewFileStateStore(cfg.Data.StateDir)
}

// ProvideProviderAdapter creates the live market-data surface. Without
// credentials the server runs cache-only and this returns nil.
func ProvideProviderAdapter(cfg *config.Config, l *applogger.Logger, m repository.Metrics) *usecase.ProviderAdapter {
	if !cfg.ProviderEnabled() {
		l.Info("no provider credentials, running cache-only")
		return nil
	}
	client := alpaca.New(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.BaseURL, l)
	quotes := []repository.QuoteSource{
		alpaca.NewSnapshotSource(client),
		alpaca.NewQuoteSource(client),
	}
	return usecase.NewProviderAdapter(client, quotes, cfg.Alpaca.Timeout, l, m)
}

// ProvideBarsUseCase creates the bar-serving orchestrator.
func ProvideBarsUseCase(
	store repository.SegmentStore,
	provider *usecase.ProviderAdapter,
	l *applogger.Logger,
	m repository.Metrics,
) *usecase.BarsUseCase {
	return usecase.NewBarsUseCase(store, provider, l, m)
}

// ProvideQuotesUseCase creates the quote deriver.
func ProvideQuotesUseCase(
	store repository.SegmentStore,
	provider *usecase.ProviderAdapter,
	l *applogger.Logger,
) *usecase.QuotesUseCase {
	return usecase.NewQuotesUseCase(store, provider, l)
}

// ProvideReviewUseCase creates the trade review use case. A missing or
// unreadable trades file degrades to an empty review set.
func ProvideReviewUseCase(cfg *config.Config, bars *usecase.BarsUseCase, l *applogger.Logger) *usecase.ReviewUseCase {
	var records []models.TradeRecord
	if cfg.Data.TradesFile != "" {
		var err error
		records, err = internalrepo.LoadTrades(cfg.Data.TradesFile)
		if err != nil {
			l.Warn("trades file not loaded",
				applogger.String("path", cfg.Data.TradesFile),
				applogger.Error(err),
			)
		}
	}
	return usecase.NewReviewUseCase(records, bars, l)
}

// ProvideHandler creates the HTTP route handler.
func ProvideHandler(
	bars *usecase.BarsUseCase,
	quotes *usecase.QuotesUseCase,
	review *usecase.ReviewUseCase,
	state repository.StateStore,
	cfg *config.Config,
	l *applogger.Logger,
) xhttp.Handler {
	return api.NewChartHandler(bars, quotes, review, state, cfg.Data.TemplatesDir, l)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, handler xhttp.Handler, l *applogger.Logger) *server.App {
	return server.New(cfg, handler, l)
}
