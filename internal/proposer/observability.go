package proposer

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single proposer invocation.
type CallEvent struct {
	Model      string
	LatencyMs  int64
	Candidates int
	Success    bool
	ErrorCode  string
}

// Observer receives events about proposer calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// LogObserver writes proposer call events through slog.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"model", event.Model,
		"latency_ms", event.LatencyMs,
		"candidates", event.Candidates,
		"success", event.Success,
	}
	if !event.Success {
		attrs = append(attrs, "error_code", event.ErrorCode)
		o.logger.Error("proposer_call", attrs...)
		return
	}
	o.logger.Info("proposer_call", attrs...)
}
