package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/whisper/gemini-moderator/internal/audit"
	"github.com/whisper/gemini-moderator/internal/gemini"
	"github.com/whisper/gemini-moderator/internal/metrics"
)

// Scorer performs the outbound scoring call. *gemini.Client implements it.
type Scorer interface {
	GenerateContent(ctx context.Context, req *gemini.GenerateContentRequest) (*gemini.GenerateContentResponse, error)
}

// Gateway carries out side effects on the chat platform.
type Gateway interface {
	DeleteMessage(ctx context.Context, ref MessageRef) error
	ReplyToMessage(ctx context.Context, ref MessageRef, text string) error
	PostToChannel(ctx context.Context, channelID, text string) error
}

// Config is the immutable per-process moderation policy.
type Config struct {
	Thresholds      Thresholds
	WarnTemplate    string // DefaultWarnTemplate when empty
	ModLogChannelID string // no mod-log notices when empty
	Model           string // recorded on audit events
}

// Outcome describes what happened to one event.
type Outcome struct {
	Skipped  bool // ineligible, never scored
	AuditID  string
	Verdict  Verdict
	Decision Decision
	Latency  time.Duration

	// ActionErr is the first gateway failure while applying Decision. It
	// does not change Decision.
	ActionErr error
}

// Moderator runs the pipeline for single message events. It holds no
// mutable state, so one Moderator serves any number of concurrent events.
type Moderator struct {
	builder *RequestBuilder
	scorer  Scorer
	gateway Gateway
	audit   audit.Sink
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time
}

// NewModerator wires a Moderator from its collaborators.
func NewModerator(builder *RequestBuilder, scorer Scorer, gateway Gateway, sink audit.Sink, cfg Config, logger *zap.Logger) *Moderator {
	if cfg.WarnTemplate == "" {
		cfg.WarnTemplate = DefaultWarnTemplate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Moderator{
		builder: builder,
		scorer:  scorer,
		gateway: gateway,
		audit:   sink,
		cfg:     cfg,
		logger:  logger.Named("moderator"),
		now:     time.Now,
	}
}

// Moderate scores ev and applies the decision. It returns an error only for
// hard scoring failures (transport, status, deserialization, malformed
// verdict); in that case nothing is audited and no action is taken.
func (m *Moderator) Moderate(ctx context.Context, ev MessageReceived) (Outcome, error) {
	if !Eligible(ev) {
		return Outcome{Skipped: true}, nil
	}

	req := m.builder.Build(ev.Content)

	start := m.now()
	resp, err := m.scorer.GenerateContent(ctx, req)
	latency := m.now().Sub(start)
	metrics.ScoringLatency.Observe(latency.Seconds())
	if err != nil {
		return Outcome{Latency: latency}, fmt.Errorf("moderation: score message %s: %w", ev.Ref.MessageID, err)
	}

	verdict, err := ParseVerdict(resp.Text())
	if err != nil {
		return Outcome{Latency: latency}, err
	}

	decision := DecideVerdict(verdict, m.cfg.Thresholds)
	out := Outcome{
		AuditID:  uuid.NewString(),
		Verdict:  verdict,
		Decision: decision,
		Latency:  latency,
	}

	m.audit.Emit(ctx, audit.Event{
		ID:        out.AuditID,
		Timestamp: m.now().UTC(),
		ChannelID: ev.Ref.ChannelID,
		MessageID: ev.Ref.MessageID,
		AuthorID:  ev.Author.ID,
		AuthorTag: ev.Author.Tag,
		Content:   ev.Content,
		Model:     m.cfg.Model,
		Score:     verdict.Score,
		Reason:    verdict.Reason,
		Fallback:  verdict.Fallback.String(),
		Decision:  decision.Action.String(),
		LatencyMs: latency.Milliseconds(),
	})

	out.ActionErr = m.apply(ctx, ev, decision)
	return out, nil
}

// apply issues the gateway calls for d. Every call is attempted; the first
// error is returned.
func (m *Moderator) apply(ctx context.Context, ev MessageReceived, d Decision) error {
	var first error
	record := func(action string, err error) {
		if err == nil {
			return
		}
		metrics.GatewayErrorsTotal.WithLabelValues(action).Inc()
		m.logger.Error("gateway action failed",
			zap.String("action", action),
			zap.String("channel_id", ev.Ref.ChannelID),
			zap.String("message_id", ev.Ref.MessageID),
			zap.Error(err))
		if first == nil {
			first = err
		}
	}

	switch d.Action {
	case ActionDelete:
		record("delete", m.gateway.DeleteMessage(ctx, ev.Ref))
	case ActionWarn:
		record("reply", m.gateway.ReplyToMessage(ctx, ev.Ref, FormatWarning(m.cfg.WarnTemplate, d)))
	default:
		return nil
	}

	if m.cfg.ModLogChannelID != "" {
		record("post", m.gateway.PostToChannel(ctx, m.cfg.ModLogChannelID, FormatModLog(ev, d)))
	}
	return first
}

// Handle is Moderate with every failure logged and counted instead of
// returned. A failed event is left unmoderated.
func (m *Moderator) Handle(ctx context.Context, ev MessageReceived) {
	out, err := m.Moderate(ctx, ev)
	if err != nil {
		kind := ErrorKind(err)
		metrics.ScoringErrorsTotal.WithLabelValues(kind).Inc()
		metrics.MessagesTotal.WithLabelValues("failed").Inc()

		fields := []zap.Field{
			zap.String("kind", kind),
			zap.String("channel_id", ev.Ref.ChannelID),
			zap.String("message_id", ev.Ref.MessageID),
			zap.Duration("latency", out.Latency),
			zap.Error(err),
		}
		m.logger.Error("message left unmoderated", fields...)
		return
	}

	if out.Skipped {
		metrics.MessagesTotal.WithLabelValues("skipped").Inc()
		m.logger.Debug("skipped ineligible message",
			zap.String("message_id", ev.Ref.MessageID),
			zap.Bool("bot", ev.Author.IsBot))
		return
	}

	metrics.MessagesTotal.WithLabelValues(out.Decision.Action.String()).Inc()
	metrics.VerdictScore.Observe(float64(out.Verdict.Score))

	if out.Verdict.Fallback != NoFallback {
		metrics.ScoreFallbacksTotal.WithLabelValues(out.Verdict.Fallback.String()).Inc()
		m.logger.Warn("score fallback applied",
			zap.String("audit_id", out.AuditID),
			zap.String("fallback", out.Verdict.Fallback.String()),
			zap.String("score_text", out.Verdict.ScoreRaw),
			zap.Uint16("score", out.Verdict.Score))
	}

	m.logger.Info("moderated",
		zap.String("audit_id", out.AuditID),
		zap.String("channel_id", ev.Ref.ChannelID),
		zap.String("message_id", ev.Ref.MessageID),
		zap.String("decision", out.Decision.Action.String()),
		zap.Uint16("score", out.Verdict.Score),
		zap.Duration("latency", out.Latency))
}
