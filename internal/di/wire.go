//go:build wireinject
// +build wireinject

package di

import (
	"ChartReview/pkg/config"
	"ChartReview/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Repositories
		ProvideSegmentStore,
		ProvideStateStore,

		// Live data
		ProvideProviderAdapter,

		// Use cases
		ProvideBarsUseCase,
		ProvideQuotesUseCase,
		ProvideReviewUseCase,

		// HTTP
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
