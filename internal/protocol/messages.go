// Package protocol defines the JSON messages exchanged with the chat gateway
// over the message bus. The gateway publishes events (new messages, session
// ready) and consumes commands (delete, reply, post). Every message carries a
// "type" discriminator.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownType is wrapped by ParseGatewayEvent for well-formed messages
// whose type this package does not model.
var ErrUnknownType = errors.New("protocol: unknown message type")

// ---------------------------------------------------------------------------
// Message type constants
// ---------------------------------------------------------------------------

// Gateway -> relay event types.
const (
	TypeMessageCreate = "message_create"
	TypeReady         = "ready"
)

// Relay -> gateway command types.
const (
	TypeDeleteMessage = "delete_message"
	TypeReplyMessage  = "reply_message"
	TypePostMessage   = "post_message"
)

// ---------------------------------------------------------------------------
// Envelope
// ---------------------------------------------------------------------------

// Envelope holds the message type and the raw JSON payload for deferred
// parsing into a concrete struct.
type Envelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON captures the full raw bytes and extracts only the "type"
// field so the rest of the payload can be decoded later.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	e.Raw = make(json.RawMessage, len(data))
	copy(e.Raw, data)

	var partial struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &partial); err != nil {
		return fmt.Errorf("protocol: failed to unmarshal envelope: %w", err)
	}
	if partial.Type == "" {
		return fmt.Errorf("protocol: missing or empty \"type\" field")
	}
	e.Type = partial.Type
	return nil
}

// ---------------------------------------------------------------------------
// Gateway -> relay events
// ---------------------------------------------------------------------------

// EventAuthor is the sender of a message as reported by the gateway.
type EventAuthor struct {
	ID    string `json:"id"`
	Tag   string `json:"tag"`
	IsBot bool   `json:"bot"`
}

// MessageCreateEvent is published for every new chat message. Content is the
// clean text with mention and markup syntax already resolved.
type MessageCreateEvent struct {
	Type      string      `json:"type"`
	ChannelID string      `json:"channel_id"`
	MessageID string      `json:"message_id"`
	Author    EventAuthor `json:"author"`
	Content   string      `json:"content"`
	Ts        int64       `json:"ts"`
}

// ReadyEvent is published once the gateway session is established.
type ReadyEvent struct {
	Type       string `json:"type"`
	UserTag    string `json:"user_tag"`
	GuildCount int    `json:"guild_count"`
}

// ---------------------------------------------------------------------------
// Relay -> gateway commands
// ---------------------------------------------------------------------------

// DeleteMessageCmd asks the gateway to delete a message.
type DeleteMessageCmd struct {
	Type      string `json:"type"`
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

// ReplyMessageCmd asks the gateway to post Content as a reply to a message.
type ReplyMessageCmd struct {
	Type      string `json:"type"`
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	Content   string `json:"content"`
}

// PostMessageCmd asks the gateway to post Content to a channel.
type PostMessageCmd struct {
	Type      string `json:"type"`
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
}

// ---------------------------------------------------------------------------
// Helper functions
// ---------------------------------------------------------------------------

// ParseGatewayEvent parses raw bus bytes into a typed gateway event. It
// returns the event type, the decoded struct and any error. Unknown types
// return the type with a nil event and an error wrapping ErrUnknownType so
// callers can ignore them.
func ParseGatewayEvent(data []byte) (string, interface{}, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", nil, fmt.Errorf("protocol: failed to parse event: %w", err)
	}

	var (
		ev  interface{}
		err error
	)

	switch env.Type {
	case TypeMessageCreate:
		var m MessageCreateEvent
		err = json.Unmarshal(env.Raw, &m)
		ev = m
	case TypeReady:
		var m ReadyEvent
		err = json.Unmarshal(env.Raw, &m)
		ev = m
	default:
		return env.Type, nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}

	if err != nil {
		return env.Type, nil, fmt.Errorf("protocol: failed to decode %q payload: %w", env.Type, err)
	}
	return env.Type, ev, nil
}

// NewCommand creates a JSON-encoded command. The cmdType is injected into
// the payload under the "type" key, overriding whatever the struct carries.
func NewCommand(cmdType string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("protocol: failed to marshal payload: %w", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("protocol: failed to unmarshal payload into map: %w", err)
	}

	m["type"] = cmdType

	out, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("protocol: failed to marshal command: %w", err)
	}
	return out, nil
}
