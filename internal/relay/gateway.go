// Package relay connects the moderation pipeline to the chat gateway bus.
// Service consumes gateway events and dispatches eligible messages to the
// moderator on a bounded worker pool; Gateway turns moderation side effects
// into gateway commands.
package relay

import (
	"context"
	"fmt"

	"github.com/whisper/gemini-moderator/internal/moderation"
	"github.com/whisper/gemini-moderator/internal/protocol"
)

// CommandPublisher sends encoded commands to the gateway.
// *messaging.NATSClient implements it.
type CommandPublisher interface {
	PublishCommand(cmdType string, data []byte) error
}

// Gateway implements moderation.Gateway by publishing commands on the bus.
type Gateway struct {
	pub CommandPublisher
}

var _ moderation.Gateway = (*Gateway)(nil)

// NewGateway returns a Gateway publishing through pub.
func NewGateway(pub CommandPublisher) *Gateway {
	return &Gateway{pub: pub}
}

// DeleteMessage asks the gateway to delete ref.
func (g *Gateway) DeleteMessage(ctx context.Context, ref moderation.MessageRef) error {
	return g.send(ctx, protocol.TypeDeleteMessage, protocol.DeleteMessageCmd{
		ChannelID: ref.ChannelID,
		MessageID: ref.MessageID,
	})
}

// ReplyToMessage asks the gateway to reply to ref with text.
func (g *Gateway) ReplyToMessage(ctx context.Context, ref moderation.MessageRef, text string) error {
	return g.send(ctx, protocol.TypeReplyMessage, protocol.ReplyMessageCmd{
		ChannelID: ref.ChannelID,
		MessageID: ref.MessageID,
		Content:   text,
	})
}

// PostToChannel asks the gateway to post text to channelID.
func (g *Gateway) PostToChannel(ctx context.Context, channelID, text string) error {
	return g.send(ctx, protocol.TypePostMessage, protocol.PostMessageCmd{
		ChannelID: channelID,
		Content:   text,
	})
}

func (g *Gateway) send(ctx context.Context, cmdType string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("relay: %s: %w", cmdType, err)
	}
	data, err := protocol.NewCommand(cmdType, payload)
	if err != nil {
		return err
	}
	if err := g.pub.PublishCommand(cmdType, data); err != nil {
		return fmt.Errorf("relay: publish %s: %w", cmdType, err)
	}
	return nil
}
