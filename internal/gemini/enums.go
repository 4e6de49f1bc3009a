package gemini

import (
	"errors"
	"fmt"
)

// ErrUnknownVariant is returned (wrapped in *UnknownVariantError) when a wire
// string matches none of the variants of a closed enumeration.
var ErrUnknownVariant = errors.New("gemini: unknown enum variant")

// UnknownVariantError reports the enumeration and the offending wire string.
type UnknownVariantError struct {
	Enum  string
	Value string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("gemini: unknown %s %q", e.Enum, e.Value)
}

func (e *UnknownVariantError) Unwrap() error { return ErrUnknownVariant }

// wirePair binds one enum variant to its canonical wire string.
type wirePair[T ~int] struct {
	value T
	wire  string
}

// enumCodec is the variant <-> wire string table for one enumeration.
// Lookups are exact and case-sensitive.
type enumCodec[T ~int] struct {
	name     string
	order    []T
	toWire   map[T]string
	fromWire map[string]T
}

func newEnumCodec[T ~int](name string, pairs ...wirePair[T]) *enumCodec[T] {
	c := &enumCodec[T]{
		name:     name,
		order:    make([]T, 0, len(pairs)),
		toWire:   make(map[T]string, len(pairs)),
		fromWire: make(map[string]T, len(pairs)),
	}
	for _, p := range pairs {
		if _, dup := c.toWire[p.value]; dup {
			panic(fmt.Sprintf("gemini: duplicate %s variant %d", name, int(p.value)))
		}
		if _, dup := c.fromWire[p.wire]; dup {
			panic(fmt.Sprintf("gemini: duplicate %s wire string %q", name, p.wire))
		}
		c.order = append(c.order, p.value)
		c.toWire[p.value] = p.wire
		c.fromWire[p.wire] = p.value
	}
	return c
}

func (c *enumCodec[T]) encode(v T) (string, error) {
	s, ok := c.toWire[v]
	if !ok {
		return "", fmt.Errorf("gemini: invalid %s value %d", c.name, int(v))
	}
	return s, nil
}

func (c *enumCodec[T]) decode(s string) (T, error) {
	v, ok := c.fromWire[s]
	if !ok {
		var zero T
		return zero, &UnknownVariantError{Enum: c.name, Value: s}
	}
	return v, nil
}

func (c *enumCodec[T]) str(v T) string {
	if s, ok := c.toWire[v]; ok {
		return s
	}
	return fmt.Sprintf("%s(%d)", c.name, int(v))
}

func (c *enumCodec[T]) values() []T {
	out := make([]T, len(c.order))
	copy(out, c.order)
	return out
}

// ---------------------------------------------------------------------------
// HarmCategory
// ---------------------------------------------------------------------------

// HarmCategory is a content-filter axis of the generative language API.
type HarmCategory int

const (
	HarmCategoryUnspecified HarmCategory = iota
	HarmCategoryDerogatory
	HarmCategoryToxicity
	HarmCategoryViolence
	HarmCategorySexual
	HarmCategoryMedical
	HarmCategoryDangerous
	HarmCategoryHarassment
	HarmCategoryHateSpeech
	HarmCategorySexuallyExplicit
	HarmCategoryDangerousContent
)

var harmCategoryCodec = newEnumCodec("HarmCategory",
	wirePair[HarmCategory]{HarmCategoryUnspecified, "HARM_CATEGORY_UNSPECIFIED"},
	wirePair[HarmCategory]{HarmCategoryDerogatory, "HARM_CATEGORY_DEROGATORY"},
	wirePair[HarmCategory]{HarmCategoryToxicity, "HARM_CATEGORY_TOXICITY"},
	wirePair[HarmCategory]{HarmCategoryViolence, "HARM_CATEGORY_VIOLENCE"},
	wirePair[HarmCategory]{HarmCategorySexual, "HARM_CATEGORY_SEXUAL"},
	wirePair[HarmCategory]{HarmCategoryMedical, "HARM_CATEGORY_MEDICAL"},
	wirePair[HarmCategory]{HarmCategoryDangerous, "HARM_CATEGORY_DANGEROUS"},
	wirePair[HarmCategory]{HarmCategoryHarassment, "HARM_CATEGORY_HARASSMENT"},
	wirePair[HarmCategory]{HarmCategoryHateSpeech, "HARM_CATEGORY_HATE_SPEECH"},
	wirePair[HarmCategory]{HarmCategorySexuallyExplicit, "HARM_CATEGORY_SEXUALLY_EXPLICIT"},
	wirePair[HarmCategory]{HarmCategoryDangerousContent, "HARM_CATEGORY_DANGEROUS_CONTENT"},
)

// HarmCategories returns every HarmCategory variant in declaration order.
func HarmCategories() []HarmCategory { return harmCategoryCodec.values() }

// ParseHarmCategory decodes a wire string.
func ParseHarmCategory(s string) (HarmCategory, error) { return harmCategoryCodec.decode(s) }

func (h HarmCategory) String() string { return harmCategoryCodec.str(h) }

func (h HarmCategory) MarshalText() ([]byte, error) {
	s, err := harmCategoryCodec.encode(h)
	return []byte(s), err
}

func (h *HarmCategory) UnmarshalText(b []byte) error {
	v, err := harmCategoryCodec.decode(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// ---------------------------------------------------------------------------
// SafetyThreshold
// ---------------------------------------------------------------------------

// SafetyThreshold is the block sensitivity applied to one HarmCategory.
type SafetyThreshold int

const (
	SafetyThresholdUnspecified SafetyThreshold = iota
	BlockLowAndAbove
	BlockMediumAndAbove
	BlockOnlyHigh
	BlockNone
)

var safetyThresholdCodec = newEnumCodec("SafetyThreshold",
	wirePair[SafetyThreshold]{SafetyThresholdUnspecified, "HARM_BLOCK_THRESHOLD_UNSPECIFIED"},
	wirePair[SafetyThreshold]{BlockLowAndAbove, "BLOCK_LOW_AND_ABOVE"},
	wirePair[SafetyThreshold]{BlockMediumAndAbove, "BLOCK_MEDIUM_AND_ABOVE"},
	wirePair[SafetyThreshold]{BlockOnlyHigh, "BLOCK_ONLY_HIGH"},
	wirePair[SafetyThreshold]{BlockNone, "BLOCK_NONE"},
)

// SafetyThresholds returns every SafetyThreshold variant in declaration order.
func SafetyThresholds() []SafetyThreshold { return safetyThresholdCodec.values() }

// ParseSafetyThreshold decodes a wire string.
func ParseSafetyThreshold(s string) (SafetyThreshold, error) { return safetyThresholdCodec.decode(s) }

func (t SafetyThreshold) String() string { return safetyThresholdCodec.str(t) }

func (t SafetyThreshold) MarshalText() ([]byte, error) {
	s, err := safetyThresholdCodec.encode(t)
	return []byte(s), err
}

func (t *SafetyThreshold) UnmarshalText(b []byte) error {
	v, err := safetyThresholdCodec.decode(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ---------------------------------------------------------------------------
// HarmProbability
// ---------------------------------------------------------------------------

// HarmProbability is the likelihood the API assigns to a HarmCategory.
type HarmProbability int

const (
	HarmProbabilityUnspecified HarmProbability = iota
	HarmProbabilityNegligible
	HarmProbabilityLow
	HarmProbabilityMedium
	HarmProbabilityHigh
)

var harmProbabilityCodec = newEnumCodec("HarmProbability",
	wirePair[HarmProbability]{HarmProbabilityUnspecified, "HARM_PROBABILITY_UNSPECIFIED"},
	wirePair[HarmProbability]{HarmProbabilityNegligible, "NEGLIGIBLE"},
	wirePair[HarmProbability]{HarmProbabilityLow, "LOW"},
	wirePair[HarmProbability]{HarmProbabilityMedium, "MEDIUM"},
	wirePair[HarmProbability]{HarmProbabilityHigh, "HIGH"},
)

// HarmProbabilities returns every HarmProbability variant in declaration order.
func HarmProbabilities() []HarmProbability { return harmProbabilityCodec.values() }

// ParseHarmProbability decodes a wire string.
func ParseHarmProbability(s string) (HarmProbability, error) { return harmProbabilityCodec.decode(s) }

func (p HarmProbability) String() string { return harmProbabilityCodec.str(p) }

func (p HarmProbability) MarshalText() ([]byte, error) {
	s, err := harmProbabilityCodec.encode(p)
	return []byte(s), err
}

func (p *HarmProbability) UnmarshalText(b []byte) error {
	v, err := harmProbabilityCodec.decode(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ---------------------------------------------------------------------------
// FinishReason
// ---------------------------------------------------------------------------

// FinishReason tells why the model stopped generating a candidate.
type FinishReason int

const (
	FinishReasonUnspecified FinishReason = iota
	FinishReasonStop
	FinishReasonMaxTokens
	FinishReasonSafety
	FinishReasonRecitation
)

var finishReasonCodec = newEnumCodec("FinishReason",
	wirePair[FinishReason]{FinishReasonUnspecified, "FINISH_REASON_UNSPECIFIED"},
	wirePair[FinishReason]{FinishReasonStop, "STOP"},
	wirePair[FinishReason]{FinishReasonMaxTokens, "MAX_TOKENS"},
	wirePair[FinishReason]{FinishReasonSafety, "SAFETY"},
	wirePair[FinishReason]{FinishReasonRecitation, "RECITATION"},
)

// FinishReasons returns every FinishReason variant in declaration order.
func FinishReasons() []FinishReason { return finishReasonCodec.values() }

// ParseFinishReason decodes a wire string.
func ParseFinishReason(s string) (FinishReason, error) { return finishReasonCodec.decode(s) }

func (r FinishReason) String() string { return finishReasonCodec.str(r) }

func (r FinishReason) MarshalText() ([]byte, error) {
	s, err := finishReasonCodec.encode(r)
	return []byte(s), err
}

func (r *FinishReason) UnmarshalText(b []byte) error {
	v, err := finishReasonCodec.decode(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
