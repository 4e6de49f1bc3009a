package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// PubSubSink publishes events as JSON to a Google Cloud Pub/Sub topic.
type PubSubSink struct {
	client *pubsub.Client
	topic  *pubsub.Topic
	logger *zap.Logger
}

// NewPubSubSink publishes to an existing topic. opts are passed to the
// Pub/Sub client, e.g. to point it at an emulator.
func NewPubSubSink(ctx context.Context, projectID, topicID string, logger *zap.Logger, opts ...option.ClientOption) (*PubSubSink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("audit: pubsub client: %w", err)
	}

	return &PubSubSink{
		client: client,
		topic:  client.Topic(topicID),
		logger: logger.Named("audit"),
	}, nil
}

// Emit blocks until the server acknowledges the message or ctx ends.
func (s *PubSubSink) Emit(ctx context.Context, ev Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("pubsub marshal failed", zap.String("audit_id", ev.ID), zap.Error(err))
		return
	}

	res := s.topic.Publish(ctx, &pubsub.Message{
		Data: b,
		Attributes: map[string]string{
			"decision": ev.Decision,
			"score":    strconv.Itoa(int(ev.Score)),
		},
	})
	if _, err := res.Get(ctx); err != nil {
		s.logger.Error("pubsub publish failed", zap.String("audit_id", ev.ID), zap.Error(err))
	}
}

// Close flushes pending publishes and releases the client.
func (s *PubSubSink) Close() error {
	s.topic.Stop()
	return s.client.Close()
}
