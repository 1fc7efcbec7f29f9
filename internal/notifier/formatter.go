package notifier

import (
	"fmt"
	"strings"
	"time"

	"StockPulse/internal/model"
)

func signalBadge(s model.Signal) string {
	switch s {
	case model.SignalBuy:
		return "🟢 BUY"
	case model.SignalSell:
		return "🔴 SELL"
	default:
		return "⚪ NEUTRAL"
	}
}

// FormatAnalysis formats one evaluation result for an on-demand query.
func FormatAnalysis(res *model.AnalysisResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", res.Symbol, time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Current price: %.2f\n", res.CurrentPrice))
	b.WriteString(fmt.Sprintf("5-day mean: %.2f\n", res.Mean))
	b.WriteString(fmt.Sprintf("Deviation: %+.2f (%+.2f%%)\n\n", res.Difference, res.PercentageChange))
	b.WriteString(fmt.Sprintf("Signal: <b>%s</b>", signalBadge(res.Signal)))
	return b.String()
}

// FormatAlert formats a background signal alert.
func FormatAlert(res *model.AnalysisResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 <b>%s alert: %s</b>\n\n", res.Symbol, signalBadge(res.Signal)))
	b.WriteString(fmt.Sprintf("Price %.2f is %+.2f%% off its 5-day mean %.2f\n",
		res.CurrentPrice, res.PercentageChange, res.Mean))
	return b.String()
}

// FormatWatchlist formats the current favorites for display.
func FormatWatchlist(symbols []string, capacity int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⭐ <b>Watchlist</b> (%d/%d)\n\n", len(symbols), capacity))
	if len(symbols) == 0 {
		b.WriteString("No symbols watched. Use /watch SYMBOL to add one.")
		return b.String()
	}
	for _, s := range symbols {
		b.WriteString(fmt.Sprintf("• %s\n", s))
	}
	return b.String()
}

// FormatHelp lists the available commands.
func FormatHelp() string {
	return strings.Join([]string{
		"Available commands:",
		"• /check SYMBOL — analyze a symbol now",
		"• /watch SYMBOL — add a favorite",
		"• /unwatch SYMBOL — remove a favorite",
		"• /list — show the watchlist",
		"• /test — run the background check now (expedited)",
	}, "\n")
}
