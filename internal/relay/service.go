package relay

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/whisper/gemini-moderator/internal/metrics"
	"github.com/whisper/gemini-moderator/internal/moderation"
	"github.com/whisper/gemini-moderator/internal/protocol"
)

// EventSource delivers raw gateway events. *messaging.NATSClient implements
// it.
type EventSource interface {
	SubscribeGatewayEvents(handler func(data []byte)) error
	UnsubscribeGatewayEvents() error
}

// Handler processes one message event. *moderation.Moderator implements it.
type Handler interface {
	Handle(ctx context.Context, ev moderation.MessageReceived)
}

// ErrStopped is returned by Start after Stop.
var ErrStopped = errors.New("relay: service stopped")

// Service dispatches gateway message events to a Handler with at most
// Workers events in flight. When every worker is busy the bus callback
// blocks, which pushes back on the subscription.
type Service struct {
	source  EventSource
	handler Handler
	logger  *zap.Logger
	group   errgroup.Group

	mu      sync.Mutex
	ctx     context.Context
	stopped bool
}

// NewService returns a Service. workers < 1 means one worker.
func NewService(source EventSource, handler Handler, workers int, logger *zap.Logger) *Service {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		source:  source,
		handler: handler,
		logger:  logger.Named("relay"),
		ctx:     context.Background(),
	}
	s.group.SetLimit(workers)
	return s
}

// Start subscribes to gateway events. ctx is the parent of every handled
// event; cancel it only after Stop has returned to let in-flight events
// finish.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrStopped
	}
	s.ctx = ctx
	s.mu.Unlock()

	if err := s.source.SubscribeGatewayEvents(s.HandleData); err != nil {
		return err
	}
	s.logger.Info("subscribed to gateway events")
	return nil
}

// Stop unsubscribes, drops any event delivered afterwards and waits for
// in-flight events to complete.
func (s *Service) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	if err := s.source.UnsubscribeGatewayEvents(); err != nil {
		s.logger.Warn("unsubscribe failed", zap.Error(err))
	}
	_ = s.group.Wait()
	s.logger.Info("relay stopped")
}

// HandleData decodes one bus message and dispatches it. Message events are
// handled asynchronously; everything else is handled inline.
func (s *Service) HandleData(data []byte) {
	evType, ev, err := protocol.ParseGatewayEvent(data)
	if errors.Is(err, protocol.ErrUnknownType) {
		s.logger.Debug("ignoring gateway event", zap.String("type", evType))
		return
	}
	if err != nil {
		s.logger.Warn("bad gateway event", zap.Error(err))
		return
	}

	switch e := ev.(type) {
	case protocol.ReadyEvent:
		s.logger.Info("ready",
			zap.String("user_tag", e.UserTag),
			zap.Int("guild_count", e.GuildCount))
	case protocol.MessageCreateEvent:
		s.dispatch(toMessageReceived(e))
	}
}

func (s *Service) dispatch(msg moderation.MessageReceived) {
	// Held across Go so Stop cannot start waiting between the check and
	// the spawn.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		s.logger.Debug("dropping event after stop", zap.String("message_id", msg.Ref.MessageID))
		return
	}
	ctx := s.ctx

	s.group.Go(func() error {
		metrics.InFlight.Inc()
		defer metrics.InFlight.Dec()
		s.handler.Handle(ctx, msg)
		return nil
	})
}

func toMessageReceived(e protocol.MessageCreateEvent) moderation.MessageReceived {
	return moderation.MessageReceived{
		Ref: moderation.MessageRef{
			ChannelID: e.ChannelID,
			MessageID: e.MessageID,
		},
		Author: moderation.Author{
			ID:    e.Author.ID,
			Tag:   e.Author.Tag,
			IsBot: e.Author.IsBot,
		},
		Content: e.Content,
		Ts:      e.Ts,
	}
}
