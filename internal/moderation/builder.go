package moderation

import (
	"fmt"

	"github.com/whisper/gemini-moderator/internal/gemini"
)

// DefaultSafetySettings disables the API's built-in filter for the current
// harm categories. The policy prompt is the only judge of content, so the
// provider must never block the reply on its own.
func DefaultSafetySettings() []gemini.SafetySetting {
	return []gemini.SafetySetting{
		{Category: gemini.HarmCategorySexuallyExplicit, Threshold: gemini.BlockNone},
		{Category: gemini.HarmCategoryHateSpeech, Threshold: gemini.BlockNone},
		{Category: gemini.HarmCategoryHarassment, Threshold: gemini.BlockNone},
		{Category: gemini.HarmCategoryDangerousContent, Threshold: gemini.BlockNone},
	}
}

// DefaultGenerationConfig pins temperature to 0 so identical input scores
// identically.
func DefaultGenerationConfig() gemini.GenerationConfig {
	return gemini.GenerationConfig{Temperature: gemini.Ptr(float32(0))}
}

// RequestBuilder assembles scoring requests. It holds no mutable state and
// is safe for concurrent use.
type RequestBuilder struct {
	prompt     PolicyPrompt
	safety     []gemini.SafetySetting
	generation gemini.GenerationConfig
}

// NewRequestBuilder validates that every harm category appears at most once
// in safety.
func NewRequestBuilder(prompt PolicyPrompt, safety []gemini.SafetySetting, generation gemini.GenerationConfig) (*RequestBuilder, error) {
	seen := make(map[gemini.HarmCategory]bool, len(safety))
	for _, s := range safety {
		if seen[s.Category] {
			return nil, fmt.Errorf("moderation: duplicate safety setting for %s", s.Category)
		}
		seen[s.Category] = true
	}

	own := make([]gemini.SafetySetting, len(safety))
	copy(own, safety)
	return &RequestBuilder{prompt: prompt, safety: own, generation: generation}, nil
}

// Build returns a request with exactly one content block holding exactly
// one text part: the rendered policy prompt.
func (b *RequestBuilder) Build(content string) *gemini.GenerateContentRequest {
	req := &gemini.GenerateContentRequest{
		Contents: []gemini.Content{{
			Parts: []gemini.Part{{Text: b.prompt.Render(content)}},
		}},
	}
	if len(b.safety) > 0 {
		req.SafetySettings = make([]gemini.SafetySetting, len(b.safety))
		copy(req.SafetySettings, b.safety)
	}
	gen := b.generation
	req.GenerationConfig = &gen
	return req
}
