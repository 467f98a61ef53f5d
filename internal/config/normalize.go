package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscriber()
	c.normalizeSummarizer()
	c.normalizeStability()
	c.normalizeIngest()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("MONITOR_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.MonitorDir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("NOTES_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.NotesDir = strings.TrimSpace(value)
	}

	var err error
	if c.Paths.MonitorDir, err = expandPath(c.Paths.MonitorDir); err != nil {
		return fmt.Errorf("paths.monitor_dir: %w", err)
	}
	if c.Paths.NotesDir, err = expandPath(c.Paths.NotesDir); err != nil {
		return fmt.Errorf("paths.notes_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscriber() {
	c.Transcriber.APIKey = strings.TrimSpace(c.Transcriber.APIKey)
	if c.Transcriber.APIKey == "" {
		if value, ok := os.LookupEnv("TRANSCRIBER_API_KEY"); ok {
			c.Transcriber.APIKey = strings.TrimSpace(value)
		}
	}
	c.Transcriber.BaseURL = strings.TrimSpace(c.Transcriber.BaseURL)
	if c.Transcriber.BaseURL == "" {
		c.Transcriber.BaseURL = defaultTranscriberBaseURL
	}
	c.Transcriber.Model = strings.TrimSpace(c.Transcriber.Model)
	if c.Transcriber.Model == "" {
		c.Transcriber.Model = defaultTranscriberModel
	}
	c.Transcriber.Language = strings.TrimSpace(c.Transcriber.Language)
	if c.Transcriber.Language == "" {
		c.Transcriber.Language = defaultTranscriberLang
	}
	if c.Transcriber.TimeoutSeconds <= 0 {
		c.Transcriber.TimeoutSeconds = defaultTranscriberTO
	}
}

func (c *Config) normalizeSummarizer() {
	c.Summarizer.APIKey = strings.TrimSpace(c.Summarizer.APIKey)
	if c.Summarizer.APIKey == "" {
		if value, ok := os.LookupEnv("SUMMARIZER_API_KEY"); ok {
			c.Summarizer.APIKey = strings.TrimSpace(value)
		}
	}
	c.Summarizer.BaseURL = strings.TrimSpace(c.Summarizer.BaseURL)
	if c.Summarizer.BaseURL == "" {
		c.Summarizer.BaseURL = defaultSummarizerBaseURL
	}
	c.Summarizer.Model = strings.TrimSpace(c.Summarizer.Model)
	if c.Summarizer.Model == "" {
		c.Summarizer.Model = defaultSummarizerModel
	}
	if c.Summarizer.TimeoutSeconds <= 0 {
		c.Summarizer.TimeoutSeconds = defaultSummarizerTO
	}
}

func (c *Config) normalizeStability() {
	if c.Stability.PollIntervalMS <= 0 {
		c.Stability.PollIntervalMS = defaultPollIntervalMS
	}
	if c.Stability.QuietPeriodMS <= 0 {
		c.Stability.QuietPeriodMS = defaultQuietPeriodMS
	}
	if c.Stability.TimeoutSeconds <= 0 {
		c.Stability.TimeoutSeconds = defaultStabilityTO
	}
}

func (c *Config) normalizeIngest() {
	if c.Ingest.QueueCapacity <= 0 {
		c.Ingest.QueueCapacity = defaultQueueCapacity
	}
	if c.Ingest.IdlePollMS <= 0 {
		c.Ingest.IdlePollMS = defaultIdlePollMS
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
