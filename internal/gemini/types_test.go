package gemini

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRequest_OmitsAbsentFields(t *testing.T) {
	req := GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: "hi"}}}},
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"contents":[{"parts":[{"text":"hi"}]}]}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("absent fields emitted as null: %s", data)
	}
}

func TestRequest_FullWireForm(t *testing.T) {
	req := GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: "a \"quoted\" line\n"}}, Role: "user"}},
		SafetySettings: []SafetySetting{
			{Category: HarmCategorySexuallyExplicit, Threshold: BlockNone},
		},
		GenerationConfig: &GenerationConfig{
			StopSequences:   []string{"\n\n"},
			Temperature:     Ptr(float32(0)),
			TopP:            Ptr(float32(0.5)),
			TopK:            Ptr(int32(3)),
			MaxOutputTokens: Ptr(uint32(64)),
			CandidateCount:  Ptr(uint8(1)),
		},
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"contents":[{"parts":[{"text":"a \"quoted\" line\n"}],"role":"user"}],` +
		`"safetySettings":[{"category":"HARM_CATEGORY_SEXUALLY_EXPLICIT","threshold":"BLOCK_NONE"}],` +
		`"generationConfig":{"stopSequences":["\n\n"],"temperature":0,"topP":0.5,"topK":3,"maxOutputTokens":64,"candidateCount":1}}`
	if string(data) != want {
		t.Errorf("marshal =\n%s\nwant\n%s", data, want)
	}
}

// A zero temperature is a set value and must be sent.
func TestGenerationConfig_ZeroTemperature(t *testing.T) {
	data, err := json.Marshal(GenerationConfig{Temperature: Ptr(float32(0))})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"temperature":0}` {
		t.Errorf("marshal = %s, want {\"temperature\":0}", data)
	}
}

func TestResponseText_Ordering(t *testing.T) {
	resp := &GenerateContentResponse{
		Candidates: []Candidate{
			{Content: Content{Parts: []Part{{Text: "7"}, {Text: "00"}}}},
			{Content: Content{Parts: []Part{}}},
			{Content: Content{Parts: []Part{{Text: "|why"}}}},
		},
	}
	if got := resp.Text(); got != "700|why" {
		t.Errorf("Text() = %q, want %q", got, "700|why")
	}

	var nilResp *GenerateContentResponse
	if got := nilResp.Text(); got != "" {
		t.Errorf("nil Text() = %q, want empty", got)
	}
}
