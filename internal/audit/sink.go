package audit

import (
	"context"

	"go.uber.org/zap"
)

// Sink receives audit events. Emit never fails the caller; sinks log their
// own delivery errors.
type Sink interface {
	Emit(ctx context.Context, ev Event)
}

// LogSink writes events to a structured logger.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("audit")}
}

func (s *LogSink) Emit(_ context.Context, ev Event) {
	s.logger.Info("scored",
		zap.String("audit_id", ev.ID),
		zap.String("channel_id", ev.ChannelID),
		zap.String("message_id", ev.MessageID),
		zap.String("author_id", ev.AuthorID),
		zap.String("content", ev.Content),
		zap.Uint16("score", ev.Score),
		zap.String("reason", ev.Reason),
		zap.String("fallback", ev.Fallback),
		zap.String("decision", ev.Decision),
		zap.Int64("latency_ms", ev.LatencyMs),
	)
}

// MultiSink fans an event out to every sink in order.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Emit(ctx context.Context, ev Event) {
	for _, s := range m.sinks {
		s.Emit(ctx, ev)
	}
}
