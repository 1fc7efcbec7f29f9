package analyzer

import (
	"errors"

	"StockPulse/internal/model"
)

// BaselineDays is the number of closes averaged into the reference mean.
// RequiredPoints is BaselineDays prior trading days plus the current day.
const (
	BaselineDays   = 5
	RequiredPoints = BaselineDays + 1
)

// Classification thresholds, in percent deviation from the baseline mean.
// Asymmetric on purpose: dips are assumed to revert faster than rallies.
// Both comparisons are strict, so -1.5 and 3.0 themselves are NEUTRAL.
const (
	BuyThreshold  = -1.5
	SellThreshold = 3.0
)

// ErrInsufficientData is returned when fewer than RequiredPoints closes are
// supplied. The caller decides whether to substitute fallback data or surface
// the error; the analyzer never retries.
var ErrInsufficientData = errors.New("insufficient data: need at least 6 daily closes")

// Analyze computes the baseline mean over the 5 closes preceding the most
// recent one, the deviation of the most recent close from that mean, and the
// resulting trading signal. Only the trailing 6 entries of history are used.
// Pure function; safe for concurrent use.
func Analyze(history []model.DailyClose) (*model.AnalysisResult, error) {
	if len(history) < RequiredPoints {
		return nil, ErrInsufficientData
	}

	window := history[len(history)-RequiredPoints:]
	current := window[len(window)-1]

	sum := 0.0
	for _, c := range window[:BaselineDays] {
		sum += c.Close
	}
	mean := sum / float64(BaselineDays)

	diff := current.Close - mean
	// A literal zero mean is not expected for real instruments, but it must
	// not crash the evaluation; the deviation is defined as 0 in that case.
	pct := 0.0
	if mean != 0 {
		pct = diff / mean * 100
	}

	return &model.AnalysisResult{
		Mean:             mean,
		CurrentPrice:     current.Close,
		Difference:       diff,
		PercentageChange: pct,
		Signal:           Classify(pct),
	}, nil
}

// Classify maps a percentage deviation to a signal.
func Classify(percentageChange float64) model.Signal {
	switch {
	case percentageChange < BuyThreshold:
		return model.SignalBuy
	case percentageChange > SellThreshold:
		return model.SignalSell
	default:
		return model.SignalNeutral
	}
}
