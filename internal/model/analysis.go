package model

// Signal classifies how far the current price sits from its recent baseline.
type Signal string

const (
	SignalBuy     Signal = "BUY"
	SignalSell    Signal = "SELL"
	SignalNeutral Signal = "NEUTRAL"
)

// AnalysisResult is the output of one signal evaluation. It is constructed
// fresh on every evaluation and never mutated.
type AnalysisResult struct {
	Symbol           string
	Mean             float64
	CurrentPrice     float64
	Difference       float64
	PercentageChange float64
	Signal           Signal
}
