package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/whisper/gemini-moderator/internal/gemini"
	"github.com/whisper/gemini-moderator/internal/moderation"
)

// Validate checks the loaded config for required fields and safe values.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Gemini.Model) == "" {
		return errors.New("gemini.model must be set")
	}
	u, err := url.Parse(cfg.Gemini.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("gemini.base_url %q is invalid", cfg.Gemini.BaseURL)
	}
	if cfg.Gemini.Timeout <= 0 {
		return errors.New("gemini.timeout must be positive")
	}
	if _, err := moderation.NewPolicyPrompt(cfg.Gemini.PolicyPrompt); err != nil {
		return fmt.Errorf("gemini.policy_prompt: %w", err)
	}

	// The policy prompt is the only judge; the provider must never filter.
	if len(cfg.Gemini.SafetySettings) == 0 {
		return errors.New("gemini.safety_settings must not be empty")
	}
	seen := make(map[gemini.HarmCategory]bool, len(cfg.Gemini.SafetySettings))
	for _, s := range cfg.Gemini.SafetySettings {
		if seen[s.Category] {
			return fmt.Errorf("gemini.safety_settings: duplicate category %s", s.Category)
		}
		seen[s.Category] = true
		if s.Threshold != gemini.BlockNone {
			return fmt.Errorf("gemini.safety_settings: %s threshold is %s, must be %s", s.Category, s.Threshold, gemini.BlockNone)
		}
	}

	if cfg.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if strings.TrimSpace(cfg.Channels.Audit) == "" {
		return errors.New("channels.audit must be set")
	}
	if strings.TrimSpace(cfg.NATSURL) == "" {
		return errors.New("nats_url must be set")
	}
	if (cfg.PubSub.ProjectID == "") != (cfg.PubSub.TopicID == "") {
		return errors.New("pubsub.project_id and pubsub.topic_id must be set together")
	}
	return nil
}
