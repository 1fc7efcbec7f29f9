package recorder

import "StockPulse/internal/model"

// EvaluationEvent holds one signal evaluation for a symbol.
type EvaluationEvent struct {
	Symbol string
	Result *model.AnalysisResult
	Source string // data source the history came from
}

// NotificationEvent records a delivered signal alert.
type NotificationEvent struct {
	Symbol string
	Signal model.Signal
	Price  float64
	Forced bool
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordEvaluation(evt *EvaluationEvent) error
	RecordNotification(evt *NotificationEvent) error
	Close() error
}
