package moderation

import (
	"strings"
	"testing"
)

func TestFormatWarning(t *testing.T) {
	d := Decision{Action: ActionWarn, Score: 960, Reason: "insults"}

	got := FormatWarning(DefaultWarnTemplate, d)
	want := "Your message may not be suitable for posting here. (Score: 960, Reason: insults)"
	if got != want {
		t.Errorf("FormatWarning() = %q, want %q", got, want)
	}

	if got := FormatWarning("[{{score}}] {{reason}} ({{score}})", d); got != "[960] insults (960)" {
		t.Errorf("FormatWarning(custom) = %q", got)
	}
}

func TestFormatModLog(t *testing.T) {
	ev := MessageReceived{
		Author:  Author{ID: "u1", Tag: "troll#0001"},
		Content: strings.Repeat("あ", 60),
	}

	got := FormatModLog(ev, Decision{Action: ActionDelete, Score: 900, Reason: "slur"})
	if !strings.HasPrefix(got, "**troll#0001 was deleted**\n") {
		t.Errorf("header wrong: %q", got)
	}
	if !strings.Contains(got, "||"+strings.Repeat("あ", 50)+"||") {
		t.Errorf("preview not cut to 50 runes: %q", got)
	}
	if !strings.Contains(got, "Score: 900\nAI Thoughts: slur") {
		t.Errorf("score/reason missing: %q", got)
	}

	short := FormatModLog(MessageReceived{Author: Author{Tag: "x"}, Content: "hi"}, Decision{Action: ActionWarn})
	if !strings.Contains(short, "x was warned") || !strings.Contains(short, "||hi||") {
		t.Errorf("short message notice = %q", short)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"", 5, ""},
		{"abc", 5, "abc"},
		{"abcdef", 3, "abc"},
		{"héllo", 2, "hé"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name string
		ev   MessageReceived
		want bool
	}{
		{"human with text", MessageReceived{Author: Author{IsBot: false}, Content: "hi"}, true},
		{"bot", MessageReceived{Author: Author{IsBot: true}, Content: "hi"}, false},
		{"empty", MessageReceived{Author: Author{IsBot: false}, Content: ""}, false},
		{"bot and empty", MessageReceived{Author: Author{IsBot: true}}, false},
		{"whitespace only", MessageReceived{Content: " "}, true},
	}
	for _, tt := range tests {
		if got := Eligible(tt.ev); got != tt.want {
			t.Errorf("Eligible(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
