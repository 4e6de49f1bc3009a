package audit

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Poster posts a text message to a chat channel.
type Poster interface {
	PostToChannel(ctx context.Context, channelID, text string) error
}

// ChannelSink posts every event to a fixed diagnostic channel.
type ChannelSink struct {
	poster    Poster
	channelID string
	logger    *zap.Logger
}

func NewChannelSink(poster Poster, channelID string, logger *zap.Logger) *ChannelSink {
	return &ChannelSink{poster: poster, channelID: channelID, logger: logger.Named("audit")}
}

func (s *ChannelSink) Emit(ctx context.Context, ev Event) {
	if err := s.poster.PostToChannel(ctx, s.channelID, Format(ev)); err != nil {
		s.logger.Error("post to audit channel failed",
			zap.String("audit_id", ev.ID),
			zap.String("channel_id", s.channelID),
			zap.Error(err))
	}
}

// Format renders the diagnostic post: the original content in a code block
// followed by the score and reason.
func Format(ev Event) string {
	return fmt.Sprintf("```\n%s\n```\nScore: %d, Reason: %s", ev.Content, ev.Score, ev.Reason)
}
