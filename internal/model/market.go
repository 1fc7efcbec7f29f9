package model

import "time"

// DailyClose is one day's closing price for a symbol.
type DailyClose struct {
	Timestamp time.Time
	Close     float64
}

// PriceHistory holds the fetched closes for one symbol.
// Closes are chronologically ascending; the fetcher guarantees the order.
type PriceHistory struct {
	Symbol    string
	Closes    []DailyClose
	FetchedAt time.Time
	Source    string
}
