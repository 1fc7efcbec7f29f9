package collector

import (
	"context"

	"StockPulse/internal/model"
)

// Fetcher defines the interface for fetching daily closing prices.
// Implementations return closes in ascending chronological order.
type Fetcher interface {
	FetchDailyCloses(ctx context.Context, symbol string, days int) ([]model.DailyClose, error)
	Name() string
}
