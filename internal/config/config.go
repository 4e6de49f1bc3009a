// Package config loads the relay's configuration from a YAML file with
// environment overrides, and its credentials from the environment only.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/whisper/gemini-moderator/internal/gemini"
	"github.com/whisper/gemini-moderator/internal/moderation"
)

// Config is the immutable process configuration. It is built once in main
// and passed by value.
type Config struct {
	NATSURL    string                `yaml:"nats_url"`
	Gemini     GeminiConfig          `yaml:"gemini"`
	Thresholds moderation.Thresholds `yaml:"thresholds"`
	Channels   ChannelConfig         `yaml:"channels"`
	// WarnTemplate may use {{score}} and {{reason}}.
	WarnTemplate string       `yaml:"warn_template"`
	MetricsAddr  string       `yaml:"metrics_addr"`
	Workers      int          `yaml:"workers"`
	PubSub       PubSubConfig `yaml:"pubsub"`
}

type GeminiConfig struct {
	BaseURL        string                 `yaml:"base_url"`
	Model          string                 `yaml:"model"`
	Timeout        time.Duration          `yaml:"timeout"`
	PolicyPrompt   string                 `yaml:"policy_prompt"` // must contain {{content}} once
	// SafetySettings may list more categories, but every threshold must be
	// BLOCK_NONE. Sampling is not configurable; temperature is always 0.
	SafetySettings []gemini.SafetySetting `yaml:"safety_settings"`
}

type ChannelConfig struct {
	Audit  string `yaml:"audit"`  // every decision is posted here
	ModLog string `yaml:"modlog"` // warn/delete notices, optional
}

// PubSubConfig enables the cloud audit sink when both fields are set.
type PubSubConfig struct {
	ProjectID string `yaml:"project_id"`
	TopicID   string `yaml:"topic_id"`
}

// Enabled reports whether audit events should also go to Pub/Sub.
func (p PubSubConfig) Enabled() bool {
	return p.ProjectID != "" && p.TopicID != ""
}

// Credentials are secrets that never live in the config file.
type Credentials struct {
	GeminiAPIKey string
	GatewayToken string
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		NATSURL: "nats://localhost:4222",
		Gemini: GeminiConfig{
			BaseURL:        gemini.DefaultBaseURL,
			Model:          gemini.DefaultModel,
			Timeout:        30 * time.Second,
			PolicyPrompt:   moderation.DefaultPolicyTemplate,
			SafetySettings: moderation.DefaultSafetySettings(),
		},
		Thresholds:   moderation.Thresholds{Delete: 850, Warn: 1950},
		WarnTemplate: moderation.DefaultWarnTemplate,
		MetricsAddr:  ":9102",
		Workers:      16,
	}
}

// Load reads configuration from a YAML file over Default. If the file
// doesn't exist, it returns Default and no error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	// A safety_settings list in the file replaces the defaults as a whole.
	// Unknown keys are rejected so a stale setting cannot be silently ignored.
	cfg.Gemini.SafetySettings = nil
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Gemini.SafetySettings == nil {
		cfg.Gemini.SafetySettings = moderation.DefaultSafetySettings()
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from environment variables. lookup is os.LookupEnv
// outside of tests.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("NATS_URL", &cfg.NATSURL)
	str("GEMINI_BASE_URL", &cfg.Gemini.BaseURL)
	str("GEMINI_MODEL", &cfg.Gemini.Model)
	str("AUDIT_CHANNEL_ID", &cfg.Channels.Audit)
	str("MODLOG_CHANNEL_ID", &cfg.Channels.ModLog)
	str("METRICS_ADDR", &cfg.MetricsAddr)
	str("PUBSUB_PROJECT_ID", &cfg.PubSub.ProjectID)
	str("PUBSUB_TOPIC_ID", &cfg.PubSub.TopicID)

	if v, ok := lookup("SCORING_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: SCORING_TIMEOUT: %w", err)
		}
		cfg.Gemini.Timeout = d
	}
	if v, ok := lookup("WORKER_POOL_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: WORKER_POOL_SIZE: %w", err)
		}
		cfg.Workers = n
	}

	threshold := func(key string, dst *uint16) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		*dst = uint16(n)
		return nil
	}
	if err := threshold("DELETE_THRESHOLD", &cfg.Thresholds.Delete); err != nil {
		return err
	}
	return threshold("WARN_THRESHOLD", &cfg.Thresholds.Warn)
}

// LoadCredentials reads GEMINI_API_KEY and GATEWAY_TOKEN. Both are required.
func LoadCredentials(lookup func(string) (string, bool)) (Credentials, error) {
	var c Credentials
	var missing []string
	if v, ok := lookup("GEMINI_API_KEY"); ok && v != "" {
		c.GeminiAPIKey = v
	} else {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if v, ok := lookup("GATEWAY_TOKEN"); ok && v != "" {
		c.GatewayToken = v
	} else {
		missing = append(missing, "GATEWAY_TOKEN")
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("config: missing required environment: %v", missing)
	}
	return c, nil
}
