// Package audit records every scored message, whatever the decision, to one
// or more sinks: the diagnostic chat channel, the structured log and an
// optional Pub/Sub topic.
package audit

import "time"

// Event is one scored message.
type Event struct {
	ID        string    `json:"id"` // correlation ID, also used in logs
	Timestamp time.Time `json:"timestamp"`
	ChannelID string    `json:"channel_id"`
	MessageID string    `json:"message_id"`
	AuthorID  string    `json:"author_id"`
	AuthorTag string    `json:"author_tag"`
	Content   string    `json:"content"`
	Model     string    `json:"model"`
	Score     uint16    `json:"score"`
	Reason    string    `json:"reason"`   // "" if the model gave none
	Fallback  string    `json:"fallback"` // none | parse_fallback | clamped
	Decision  string    `json:"decision"` // allow | warn | delete
	LatencyMs int64     `json:"latency_ms"`
}
