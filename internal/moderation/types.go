package moderation

// Author is the sender of a chat message.
type Author struct {
	ID    string `json:"id"`
	Tag   string `json:"tag"` // display handle, e.g. "name#1234"
	IsBot bool   `json:"is_bot"`
}

// MessageRef identifies one message on the chat platform.
type MessageRef struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

// MessageReceived is delivered by the gateway for every new chat message.
// Content has already been stripped of platform mention/markup syntax.
type MessageReceived struct {
	Ref     MessageRef `json:"ref"`
	Author  Author     `json:"author"`
	Content string     `json:"content"`
	Ts      int64      `json:"ts"`
}

// Eligible reports whether ev should be scored at all. Bot messages and
// empty messages never reach the scoring endpoint.
func Eligible(ev MessageReceived) bool {
	return !ev.Author.IsBot && ev.Content != ""
}
