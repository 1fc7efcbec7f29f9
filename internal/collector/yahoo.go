package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"StockPulse/internal/model"
)

// yahooRatePerMinute keeps the fetcher well under Yahoo's unauthenticated
// limits when several favorites are evaluated back to back.
const yahooRatePerMinute = 30

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
	limiter   *rate.Limiter
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
		limiter: rate.NewLimiter(rate.Limit(float64(yahooRatePerMinute)/60.0), 5),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// FetchDailyCloses fetches at most days daily closes, ascending by time.
func (f *YahooFetcher) FetchDailyCloses(ctx context.Context, symbol string, days int) ([]model.DailyClose, error) {
	rng := "2y"
	if days <= 30 {
		rng = "1mo"
	} else if days <= 90 {
		rng = "3mo"
	} else if days <= 180 {
		rng = "6mo"
	} else if days <= 365 {
		rng = "1y"
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("yahoo rate limit: %w", err)
	}

	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s",
		url.PathEscape(f.yahooSymbol(symbol)), rng)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	closes, err := parseChartCloses(body)
	if err != nil {
		return nil, err
	}
	if len(closes) > days {
		closes = closes[len(closes)-days:]
	}
	return closes, nil
}

func parseChartCloses(body []byte) ([]model.DailyClose, error) {
	if desc := gjson.GetBytes(body, "chart.error.description"); desc.Exists() {
		return nil, fmt.Errorf("yahoo api error: %s", desc.String())
	}

	timestamps := gjson.GetBytes(body, "chart.result.0.timestamp")
	quotes := gjson.GetBytes(body, "chart.result.0.indicators.quote.0.close")
	if !timestamps.IsArray() || !quotes.IsArray() {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	ts := timestamps.Array()
	cs := quotes.Array()
	if len(ts) != len(cs) {
		return nil, fmt.Errorf("yahoo: timestamp/close length mismatch: %d vs %d", len(ts), len(cs))
	}

	closes := make([]model.DailyClose, 0, len(ts))
	for i := range ts {
		if cs[i].Type == gjson.Null {
			continue // skip null bars (holidays etc.)
		}
		closes = append(closes, model.DailyClose{
			Timestamp: time.Unix(ts[i].Int(), 0),
			Close:     cs[i].Float(),
		})
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("yahoo: no usable closes")
	}

	sort.Slice(closes, func(i, j int) bool { return closes[i].Timestamp.Before(closes[j].Timestamp) })
	return closes, nil
}
