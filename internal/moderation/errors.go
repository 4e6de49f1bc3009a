package moderation

import (
	"errors"

	"github.com/whisper/gemini-moderator/internal/gemini"
)

// Error kinds used as log fields and metric labels.
const (
	KindTransport        = "transport"
	KindHTTPStatus       = "http_status"
	KindDeserialization  = "deserialization"
	KindMalformedVerdict = "malformed_verdict"
	KindOther            = "other"
)

// ErrorKind classifies a pipeline error. It returns "" for nil.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, gemini.ErrTransport):
		return KindTransport
	case errors.Is(err, gemini.ErrHTTPStatus):
		return KindHTTPStatus
	case errors.Is(err, gemini.ErrDeserialization):
		return KindDeserialization
	case errors.Is(err, ErrMalformedVerdict):
		return KindMalformedVerdict
	default:
		return KindOther
	}
}
