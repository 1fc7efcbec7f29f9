package collector

import (
	"context"
	"log"
	"time"

	"StockPulse/internal/model"
)

// fallbackBasePrice anchors the substitute series when a fetch fails.
const fallbackBasePrice = 100.0

// Collector obtains a symbol's recent history, substituting a fixed fallback
// series on fetch failure rather than propagating the error: downstream
// analysis should always see valid input when at all possible.
type Collector struct {
	Fetcher     Fetcher
	HistoryDays int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, historyDays int) *Collector {
	return &Collector{Fetcher: fetcher, HistoryDays: historyDays}
}

// History fetches the recent daily closes for symbol.
func (c *Collector) History(ctx context.Context, symbol string) *model.PriceHistory {
	closes, err := c.Fetcher.FetchDailyCloses(ctx, symbol, c.HistoryDays)
	source := c.Fetcher.Name()
	if err != nil {
		log.Printf("[WARN] fetch %s from %s failed: %v, substituting fallback series", symbol, source, err)
		closes = FallbackCloses(fallbackBasePrice, c.HistoryDays)
		source = "fallback"
	}
	return &model.PriceHistory{
		Symbol:    symbol,
		Closes:    closes,
		FetchedAt: time.Now(),
		Source:    source,
	}
}
