package moderation

import (
	"errors"
	"testing"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		score    uint16
		reason   string
		fallback NumericFallback
	}{
		{"score and reason", "400|possibly offensive language", 400, "possibly offensive language", NoFallback},
		{"zero empty reason", "0|", 0, "", NoFallback},
		{"non-numeric score", "not-a-number|reason", 0, "reason", NumericParseFallback},
		{"extra delimiters kept", "700|contains | a pipe", 700, "contains | a pipe", NoFallback},
		{"empty score", "|just a reason", 0, "just a reason", NumericParseFallback},
		{"surrounding whitespace", " 850 |slur", 850, "slur", NoFallback},
		{"leading space trimmed", " 400|x", 400, "x", NoFallback},
		{"newline and tab trimmed", "\t400\n|x", 400, "x", NoFallback},
		{"inner space not trimmed", "4 00|x", 0, "x", NumericParseFallback},
		{"trailing newline in reason", "120|mild\n", 120, "mild\n", NoFallback},
		{"negative score", "-5|odd", 0, "odd", NumericParseFallback},
		{"decimal score", "12.5|odd", 0, "odd", NumericParseFallback},
		{"max uint16", "65535|x", 65535, "x", NoFallback},
		{"overflow clamps", "70000|way too high", 65535, "way too high", NumericClampFallback},
		{"huge overflow clamps", "99999999999999999999999|x", 65535, "x", NumericClampFallback},
		{"above policy range", "1950|over the scale", 1950, "over the scale", NoFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVerdict(tt.input)
			if err != nil {
				t.Fatalf("ParseVerdict(%q) error: %v", tt.input, err)
			}
			if v.Score != tt.score {
				t.Errorf("ParseVerdict(%q).Score = %d, want %d", tt.input, v.Score, tt.score)
			}
			if v.Reason != tt.reason {
				t.Errorf("ParseVerdict(%q).Reason = %q, want %q", tt.input, v.Reason, tt.reason)
			}
			if v.Fallback != tt.fallback {
				t.Errorf("ParseVerdict(%q).Fallback = %v, want %v", tt.input, v.Fallback, tt.fallback)
			}
		})
	}
}

func TestParseVerdict_Malformed(t *testing.T) {
	for _, input := range []string{"no delimiter here", "", "400", "¦ broken bar"} {
		v, err := ParseVerdict(input)
		if !errors.Is(err, ErrMalformedVerdict) {
			t.Errorf("ParseVerdict(%q) error = %v, want ErrMalformedVerdict", input, err)
			continue
		}
		var mv *MalformedVerdictError
		if !errors.As(err, &mv) || mv.Raw != input {
			t.Errorf("ParseVerdict(%q) error does not carry raw text: %v", input, err)
		}
		if v != (Verdict{}) {
			t.Errorf("ParseVerdict(%q) produced a verdict: %+v", input, v)
		}
	}
}

func TestNumericFallback_String(t *testing.T) {
	tests := map[NumericFallback]string{
		NoFallback:           "none",
		NumericParseFallback: "parse_fallback",
		NumericClampFallback: "clamped",
		NumericFallback(9):   "NumericFallback(9)",
	}
	for f, want := range tests {
		if got := f.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(f), got, want)
		}
	}
}

func TestParseVerdict_KeepsUntrimmedScoreText(t *testing.T) {
	v, err := ParseVerdict(" 400 |x")
	if err != nil {
		t.Fatalf("ParseVerdict: %v", err)
	}
	if v.Score != 400 || v.ScoreRaw != " 400 " {
		t.Errorf("score = %d, raw = %q; want 400 and %q", v.Score, v.ScoreRaw, " 400 ")
	}
}
