package relay

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/whisper/gemini-moderator/internal/moderation"
	"github.com/whisper/gemini-moderator/internal/protocol"
)

type published struct {
	cmdType string
	data    []byte
}

type fakePublisher struct {
	sent []published
	err  error
}

func (p *fakePublisher) PublishCommand(cmdType string, data []byte) error {
	p.sent = append(p.sent, published{cmdType, data})
	return p.err
}

func decode(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal command: %v", err)
	}
	return m
}

func TestGateway_Commands(t *testing.T) {
	ref := moderation.MessageRef{ChannelID: "c1", MessageID: "m1"}
	ctx := context.Background()

	tests := []struct {
		name string
		call func(g *Gateway) error
		typ  string
		want map[string]interface{}
	}{
		{
			name: "delete",
			call: func(g *Gateway) error { return g.DeleteMessage(ctx, ref) },
			typ:  protocol.TypeDeleteMessage,
			want: map[string]interface{}{"type": "delete_message", "channel_id": "c1", "message_id": "m1"},
		},
		{
			name: "reply",
			call: func(g *Gateway) error { return g.ReplyToMessage(ctx, ref, "careful") },
			typ:  protocol.TypeReplyMessage,
			want: map[string]interface{}{"type": "reply_message", "channel_id": "c1", "message_id": "m1", "content": "careful"},
		},
		{
			name: "post",
			call: func(g *Gateway) error { return g.PostToChannel(ctx, "audit", "log line") },
			typ:  protocol.TypePostMessage,
			want: map[string]interface{}{"type": "post_message", "channel_id": "audit", "content": "log line"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{}
			if err := tt.call(NewGateway(pub)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(pub.sent) != 1 {
				t.Fatalf("published %d commands, want 1", len(pub.sent))
			}
			if pub.sent[0].cmdType != tt.typ {
				t.Errorf("command type = %q, want %q", pub.sent[0].cmdType, tt.typ)
			}
			got := decode(t, pub.sent[0].data)
			if len(got) != len(tt.want) {
				t.Errorf("command = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestGateway_PublishError(t *testing.T) {
	busErr := errors.New("connection closed")
	g := NewGateway(&fakePublisher{err: busErr})

	err := g.DeleteMessage(context.Background(), moderation.MessageRef{ChannelID: "c", MessageID: "m"})
	if !errors.Is(err, busErr) {
		t.Errorf("err = %v, want wrapping %v", err, busErr)
	}
}

func TestGateway_CancelledContext(t *testing.T) {
	pub := &fakePublisher{}
	g := NewGateway(pub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.PostToChannel(ctx, "c", "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(pub.sent) != 0 {
		t.Errorf("published after cancel: %v", pub.sent)
	}
}
