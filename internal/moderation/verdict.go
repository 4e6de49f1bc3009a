package moderation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// VerdictDelimiter separates the score from the reason in the model reply.
const VerdictDelimiter = "|"

// ErrMalformedVerdict is returned (wrapped in *MalformedVerdictError) when
// the model reply contains no delimiter.
var ErrMalformedVerdict = errors.New("moderation: malformed verdict")

// MalformedVerdictError carries the raw model text for diagnostics.
type MalformedVerdictError struct {
	Raw string
}

func (e *MalformedVerdictError) Error() string {
	return fmt.Sprintf("moderation: malformed verdict: no %q in %q", VerdictDelimiter, e.Raw)
}

func (e *MalformedVerdictError) Unwrap() error { return ErrMalformedVerdict }

// NumericFallback records why the score text could not be used as-is.
type NumericFallback int

const (
	// NoFallback means the score text parsed cleanly.
	NoFallback NumericFallback = iota
	// NumericParseFallback means the score text was not an unsigned integer
	// and the score was replaced with 0 ("no violation detected").
	NumericParseFallback
	// NumericClampFallback means the score exceeded the uint16 range and was
	// clamped to its maximum.
	NumericClampFallback
)

func (f NumericFallback) String() string {
	switch f {
	case NoFallback:
		return "none"
	case NumericParseFallback:
		return "parse_fallback"
	case NumericClampFallback:
		return "clamped"
	default:
		return "NumericFallback(" + strconv.Itoa(int(f)) + ")"
	}
}

// Verdict is the parsed (score, reason) pair of a model reply.
type Verdict struct {
	Score    uint16
	Reason   string
	Fallback NumericFallback
	ScoreRaw string // text before the delimiter, as returned
}

// ParseVerdict splits text at the first delimiter. Everything after it is
// the reason, further delimiters included, kept verbatim.
//
// Leading and trailing whitespace around the score is trimmed before
// parsing, so " 400|x" scores 400; the untrimmed text stays in ScoreRaw. A
// trimmed score that is not an unsigned integer becomes 0 with Fallback set
// to NumericParseFallback; a score above the uint16 range is clamped.
func ParseVerdict(text string) (Verdict, error) {
	scoreText, reason, ok := strings.Cut(text, VerdictDelimiter)
	if !ok {
		return Verdict{}, &MalformedVerdictError{Raw: text}
	}

	v := Verdict{Reason: reason, ScoreRaw: scoreText}

	n, err := strconv.ParseUint(strings.TrimSpace(scoreText), 10, 16)
	switch {
	case err == nil:
		v.Score = uint16(n)
	case errors.Is(err, strconv.ErrRange):
		// ParseUint returns the maximum value on overflow.
		v.Score = uint16(n)
		v.Fallback = NumericClampFallback
	default:
		v.Score = 0
		v.Fallback = NumericParseFallback
	}
	return v, nil
}
