package moderation

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultWarnTemplate is the reply posted under a warned message.
const DefaultWarnTemplate = "Your message may not be suitable for posting here. (Score: {{score}}, Reason: {{reason}})"

// modLogPreviewRunes is how much of the message a mod-log notice quotes.
const modLogPreviewRunes = 50

// FormatWarning fills the {{score}} and {{reason}} placeholders of tmpl.
func FormatWarning(tmpl string, d Decision) string {
	return strings.NewReplacer(
		"{{score}}", strconv.Itoa(int(d.Score)),
		"{{reason}}", d.Reason,
	).Replace(tmpl)
}

// FormatModLog renders the moderator-facing notice for a warned or deleted
// message. The message is quoted as a spoiler, cut to its first 50 runes.
func FormatModLog(ev MessageReceived, d Decision) string {
	var verb string
	switch d.Action {
	case ActionDelete:
		verb = " was deleted"
	case ActionWarn:
		verb = " was warned"
	default:
		verb = " was allowed"
	}
	return fmt.Sprintf("**%s%s**\n>>> Message: :warning: ||%s||\nScore: %d\nAI Thoughts: %s",
		ev.Author.Tag, verb, truncateRunes(ev.Content, modLogPreviewRunes), d.Score, d.Reason)
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
