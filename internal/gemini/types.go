package gemini

import "strings"

// Part is one text fragment of a Content block.
type Part struct {
	Text string `json:"text"`
}

// Content is an ordered sequence of parts with an optional role tag.
type Content struct {
	Parts []Part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

// SafetySetting pairs a harm category with the threshold at which the API
// blocks content for it.
type SafetySetting struct {
	Category  HarmCategory    `json:"category" yaml:"category"`
	Threshold SafetyThreshold `json:"threshold" yaml:"threshold"`
}

// GenerationConfig holds optional sampling parameters. Nil fields are
// omitted from the request body.
type GenerationConfig struct {
	StopSequences   []string `json:"stopSequences,omitempty"`
	Temperature     *float32 `json:"temperature,omitempty"`
	TopP            *float32 `json:"topP,omitempty"`
	TopK            *int32   `json:"topK,omitempty"`
	MaxOutputTokens *uint32  `json:"maxOutputTokens,omitempty"`
	CandidateCount  *uint8   `json:"candidateCount,omitempty"`
}

// GenerateContentRequest is the body of a models/<model>:generateContent call.
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	SafetySettings   []SafetySetting   `json:"safetySettings,omitempty"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// SafetyRating is the API's own assessment of a candidate for one category.
type SafetyRating struct {
	Category    HarmCategory    `json:"category"`
	Probability HarmProbability `json:"probability"`
	Blocked     *bool           `json:"blocked,omitempty"`
}

// Candidate is one alternative response generated by the model.
type Candidate struct {
	Content       Content        `json:"content"`
	FinishReason  *FinishReason  `json:"finishReason,omitempty"`
	SafetyRatings []SafetyRating `json:"safetyRatings,omitempty"`
	TokenCount    *uint32        `json:"tokenCount,omitempty"`
	Index         *uint32        `json:"index,omitempty"`
}

// GenerateContentResponse is the body returned on a 2xx generateContent call.
// Candidates may be empty.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Text concatenates the text of every part of every candidate, in the order
// returned.
func (r *GenerateContentResponse) Text() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// Ptr returns a pointer to v, for populating optional request fields.
func Ptr[T any](v T) *T { return &v }
