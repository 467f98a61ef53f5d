package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscriber(); err != nil {
		return err
	}
	if err := c.validateSummarizer(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscriber() error {
	if c.Transcriber.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/murmur/config.toml"
		}
		return fmt.Errorf("transcriber.api_key is required. Set TRANSCRIBER_API_KEY env var or edit %s", defaultPath)
	}
	return nil
}

func (c *Config) validateSummarizer() error {
	if c.Summarizer.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/murmur/config.toml"
		}
		return fmt.Errorf("summarizer.api_key is required. Set SUMMARIZER_API_KEY env var or edit %s", defaultPath)
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.MonitorDir) == "" {
		return errors.New("paths.monitor_dir must be set")
	}
	if strings.TrimSpace(c.Paths.NotesDir) == "" {
		return errors.New("paths.notes_dir must be set")
	}
	return nil
}

func (c *Config) validateTiming() error {
	if err := ensurePositiveMap(map[string]int{
		"transcriber.timeout_seconds": c.Transcriber.TimeoutSeconds,
		"summarizer.timeout_seconds":  c.Summarizer.TimeoutSeconds,
		"stability.poll_interval_ms":  c.Stability.PollIntervalMS,
		"stability.quiet_period_ms":   c.Stability.QuietPeriodMS,
		"stability.timeout_seconds":   c.Stability.TimeoutSeconds,
		"ingest.queue_capacity":       c.Ingest.QueueCapacity,
		"ingest.idle_poll_ms":         c.Ingest.IdlePollMS,
	}); err != nil {
		return err
	}
	if c.Stability.QuietPeriodMS >= c.Stability.TimeoutSeconds*1000 {
		return errors.New("stability.quiet_period_ms must be less than stability.timeout_seconds")
	}
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
