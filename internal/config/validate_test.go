package config

import (
	"strings"
	"testing"

	"github.com/whisper/gemini-moderator/internal/gemini"
)

func validConfig() Config {
	cfg := Default()
	cfg.Channels.Audit = "audit"
	return cfg
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty model", func(c *Config) { c.Gemini.Model = " " }, "gemini.model"},
		{"bad base url", func(c *Config) { c.Gemini.BaseURL = "not a url" }, "base_url"},
		{"zero timeout", func(c *Config) { c.Gemini.Timeout = 0 }, "timeout"},
		{"prompt without placeholder", func(c *Config) { c.Gemini.PolicyPrompt = "rate this" }, "policy_prompt"},
		{"prompt with two placeholders", func(c *Config) { c.Gemini.PolicyPrompt = "{{content}}{{content}}" }, "policy_prompt"},
		{"duplicate category", func(c *Config) {
			c.Gemini.SafetySettings = append(c.Gemini.SafetySettings,
				gemini.SafetySetting{Category: gemini.HarmCategoryHateSpeech, Threshold: gemini.BlockOnlyHigh})
		}, "duplicate"},
		{"stricter threshold", func(c *Config) {
			c.Gemini.SafetySettings[1].Threshold = gemini.BlockLowAndAbove
		}, "must be BLOCK_NONE"},
		{"only-high threshold", func(c *Config) {
			c.Gemini.SafetySettings = []gemini.SafetySetting{{Category: gemini.HarmCategoryToxicity, Threshold: gemini.BlockOnlyHigh}}
		}, "must be BLOCK_NONE"},
		{"empty safety settings", func(c *Config) { c.Gemini.SafetySettings = []gemini.SafetySetting{} }, "must not be empty"},
		{"nil safety settings", func(c *Config) { c.Gemini.SafetySettings = nil }, "must not be empty"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"no audit channel", func(c *Config) { c.Channels.Audit = "" }, "channels.audit"},
		{"no nats url", func(c *Config) { c.NATSURL = "" }, "nats_url"},
		{"half pubsub", func(c *Config) { c.PubSub.ProjectID = "p" }, "pubsub"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := Validate(cfg); err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			} else if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.want)
			}
		})
	}
}

func TestValidateOK(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cfg := validConfig()
	cfg.Thresholds.Delete, cfg.Thresholds.Warn = 800, 950
	cfg.Gemini.SafetySettings = append(cfg.Gemini.SafetySettings,
		gemini.SafetySetting{Category: gemini.HarmCategoryToxicity, Threshold: gemini.BlockNone})
	cfg.PubSub.ProjectID, cfg.PubSub.TopicID = "p", "t"
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected inverted thresholds and an extra BLOCK_NONE category to be valid, got %v", err)
	}
}
