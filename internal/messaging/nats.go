// Package messaging provides a NATS client wrapper for the gateway bus. It
// handles connection lifecycle, queue subscriptions for gateway events and
// publishing of gateway commands.
package messaging

import (
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NATS subjects shared with the chat gateway.
const (
	SubjectGatewayEvents   = "gateway.events"
	SubjectGatewayCommands = "gateway.commands" // + .<command type>
)

// QueueModerator is the queue group relays join, so each gateway event is
// delivered to exactly one relay instance.
const QueueModerator = "moderator"

// NATSClient wraps the NATS connection with helper methods for pub/sub.
type NATSClient struct {
	conn   *nats.Conn
	logger *zap.Logger
	mu     sync.Mutex
	subs   map[string]*nats.Subscription
}

// NATSConfig holds NATS connection settings.
type NATSConfig struct {
	URL           string        // nats://localhost:4222
	Name          string        // client name for identification
	Token         string        // auth token, optional
	ReconnectWait time.Duration // time between reconnect attempts
	MaxReconnects int           // max reconnect attempts (-1 for infinite)
}

// DefaultNATSConfig returns sensible defaults.
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		Name:          "gemini-moderator",
		ReconnectWait: 2 * time.Second,
		MaxReconnects: -1,
	}
}

// NewNATSClient connects to NATS with the given config and returns a ready
// client. It returns an error if the initial connection fails.
func NewNATSClient(config NATSConfig, logger *zap.Logger) (*NATSClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("nats")

	opts := []nats.Option{
		nats.Name(config.Name),
		nats.ReconnectWait(config.ReconnectWait),
		nats.MaxReconnects(config.MaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("disconnected", zap.Error(err))
			} else {
				logger.Info("disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("connection closed")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			subject := ""
			if sub != nil {
				subject = sub.Subject
			}
			logger.Error("async error", zap.String("subject", subject), zap.Error(err))
		}),
	}
	if config.Token != "" {
		opts = append(opts, nats.Token(config.Token))
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	logger.Info("connected", zap.String("url", nc.ConnectedUrl()))

	return &NATSClient{
		conn:   nc,
		logger: logger,
		subs:   make(map[string]*nats.Subscription),
	}, nil
}

// Publish sends data to the given NATS subject.
func (c *NATSClient) Publish(subject string, data []byte) error {
	return c.conn.Publish(subject, data)
}

// QueueSubscribe registers a handler for the given subject as a member of
// the queue group and stores the subscription for later cleanup.
func (c *NATSClient) QueueSubscribe(subject, queue string, handler func(msg *nats.Msg)) error {
	sub, err := c.conn.QueueSubscribe(subject, queue, handler)
	if err != nil {
		return fmt.Errorf("nats queue subscribe %s (%s): %w", subject, queue, err)
	}

	c.mu.Lock()
	c.subs[subject] = sub
	c.mu.Unlock()

	return nil
}

// SubscribeGatewayEvents joins the moderator queue group on the gateway
// event subject and passes the raw message data to the handler.
func (c *NATSClient) SubscribeGatewayEvents(handler func(data []byte)) error {
	return c.QueueSubscribe(SubjectGatewayEvents, QueueModerator, func(msg *nats.Msg) {
		handler(msg.Data)
	})
}

// UnsubscribeGatewayEvents starts draining the gateway event subscription
// and returns without waiting. No new events are accepted; events the client
// has already buffered may still reach the handler after it returns.
func (c *NATSClient) UnsubscribeGatewayEvents() error {
	c.mu.Lock()
	sub, ok := c.subs[SubjectGatewayEvents]
	delete(c.subs, SubjectGatewayEvents)
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("nats: no subscription for subject %s", SubjectGatewayEvents)
	}
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain %s: %w", SubjectGatewayEvents, err)
	}
	return nil
}

// PublishCommand publishes an encoded command to gateway.commands.<cmdType>.
func (c *NATSClient) PublishCommand(cmdType string, data []byte) error {
	return c.Publish(SubjectGatewayCommands+"."+cmdType, data)
}

// Flush round-trips to the server so every published command is known to
// have been received.
func (c *NATSClient) Flush(timeout time.Duration) error {
	return c.conn.FlushTimeout(timeout)
}

// Close drains all active subscriptions and closes the NATS connection.
func (c *NATSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for subject, sub := range c.subs {
		if err := sub.Drain(); err != nil {
			c.logger.Warn("drain failed", zap.String("subject", subject), zap.Error(err))
		}
	}
	c.subs = make(map[string]*nats.Subscription)

	if err := c.conn.Drain(); err != nil {
		c.logger.Warn("connection drain failed", zap.Error(err))
	}

	c.logger.Info("client closed")
}
