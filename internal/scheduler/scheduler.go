package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"StockPulse/internal/analyzer"
	"StockPulse/internal/collector"
	"StockPulse/internal/gate"
	"StockPulse/internal/model"
	"StockPulse/internal/notifier"
	"StockPulse/internal/recorder"
	"StockPulse/internal/watchlist"

	"github.com/robfig/cron/v3"
)

// Notifier delivers user-visible messages. The scheduler decides whether to
// call it, never how the message is presented.
type Notifier interface {
	Send(ctx context.Context, text string) error
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the background favorites check on a cron cadence and serves
// the on-demand command paths.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Watchlist *watchlist.Manager
	Gate      *gate.Gate
	Notifier  Notifier
	Recorder  recorder.Recorder
	Ctx       context.Context
	Now       func() time.Time // injected clock, defaults to time.Now
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, wl *watchlist.Manager, g *gate.Gate, n Notifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Watchlist: wl,
		Gate:      g,
		Notifier:  n,
		Recorder:  rec,
		Ctx:       ctx,
		Now:       time.Now,
	}
}

// RegisterAll registers the recurring background check.
func (s *Scheduler) RegisterAll(checkCron string) error {
	if _, err := s.Cron.AddFunc(checkCron, func() { s.EvaluateAllFavorites(false) }); err != nil {
		return fmt.Errorf("register check task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// EvaluateSymbol fetches and analyzes one symbol on demand. Never gated: an
// interactive query always shows the current signal.
func (s *Scheduler) EvaluateSymbol(symbol string) (*model.AnalysisResult, error) {
	history := s.Collector.History(s.Ctx, symbol)
	res, err := analyzer.Analyze(history.Closes)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}
	res.Symbol = history.Symbol

	if err := s.Recorder.RecordEvaluation(&recorder.EvaluationEvent{
		Symbol: res.Symbol, Result: res, Source: history.Source,
	}); err != nil {
		log.Printf("[ERROR] record evaluation: %v", err)
	}
	return res, nil
}

// EvaluateAllFavorites evaluates every watched symbol independently: one
// symbol's fetch or analysis failure never aborts the others. Non-neutral
// signals are notified only when the gate allows; force bypasses the
// time-window check (the gate still blocks weekends).
func (s *Scheduler) EvaluateAllFavorites(force bool) {
	symbols := s.Watchlist.List()
	log.Printf("[INFO] running favorites check: %d symbols, force=%v", len(symbols), force)

	for _, symbol := range symbols {
		res, err := s.EvaluateSymbol(symbol)
		if err != nil {
			log.Printf("[WARN] skipping %s this round: %v", symbol, err)
			continue
		}
		if res.Signal == model.SignalNeutral {
			continue
		}
		if !s.Gate.ShouldNotify(s.Now(), force) {
			log.Printf("[INFO] %s signal %s suppressed by notification gate", symbol, res.Signal)
			continue
		}

		s.trySend(notifier.FormatAlert(res))
		if err := s.Recorder.RecordNotification(&recorder.NotificationEvent{
			Symbol: res.Symbol, Signal: res.Signal, Price: res.CurrentPrice, Forced: force,
		}); err != nil {
			log.Printf("[ERROR] record notification: %v", err)
		}
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}

	switch fields[0] {
	case "/check":
		if len(fields) < 2 {
			return "Usage: /check SYMBOL"
		}
		res, err := s.EvaluateSymbol(strings.ToUpper(fields[1]))
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return notifier.FormatAnalysis(res)
	case "/watch":
		if len(fields) < 2 {
			return "Usage: /watch SYMBOL"
		}
		if err := s.Watchlist.Add(fields[1]); err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("✅ watching %s", strings.ToUpper(fields[1]))
	case "/unwatch":
		if len(fields) < 2 {
			return "Usage: /unwatch SYMBOL"
		}
		if err := s.Watchlist.Remove(fields[1]); err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return fmt.Sprintf("✅ stopped watching %s", strings.ToUpper(fields[1]))
	case "/list":
		return notifier.FormatWatchlist(s.Watchlist.List(), s.WatchlistCapacity())
	case "/test":
		go s.EvaluateAllFavorites(true)
		return "🚀 expedited check started"
	default:
		return notifier.FormatHelp()
	}
}

// WatchlistCapacity reports the configured favorites bound for display.
func (s *Scheduler) WatchlistCapacity() int {
	return s.Watchlist.Capacity()
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
