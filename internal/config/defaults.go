package config

const (
	defaultMonitorDir     = "./audio_in"
	defaultNotesDir       = "./notes"
	defaultLogDir         = "~/.local/share/murmur/logs"
	defaultStateDir       = "~/.local/share/murmur"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultQueueCapacity  = 1024
	defaultIdlePollMS     = 100
	defaultPollIntervalMS = 100
	defaultQuietPeriodMS  = 500
	defaultStabilityTO    = 10

	defaultTranscriberBaseURL = "https://api.deepgram.com/v1/listen"
	defaultTranscriberModel   = "nova-2"
	defaultTranscriberLang    = "en"
	defaultTranscriberTO      = 30

	defaultSummarizerBaseURL = "https://api.openai.com/v1/chat/completions"
	defaultSummarizerModel   = "gpt-3.5-turbo"
	defaultSummarizerTO      = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MonitorDir: defaultMonitorDir,
			NotesDir:   defaultNotesDir,
			LogDir:     defaultLogDir,
			StateDir:   defaultStateDir,
		},
		Transcriber: Transcriber{
			BaseURL:        defaultTranscriberBaseURL,
			Model:          defaultTranscriberModel,
			Language:       defaultTranscriberLang,
			TimeoutSeconds: defaultTranscriberTO,
		},
		Summarizer: Summarizer{
			BaseURL:        defaultSummarizerBaseURL,
			Model:          defaultSummarizerModel,
			TimeoutSeconds: defaultSummarizerTO,
		},
		Stability: Stability{
			PollIntervalMS: defaultPollIntervalMS,
			QuietPeriodMS:  defaultQuietPeriodMS,
			TimeoutSeconds: defaultStabilityTO,
		},
		Ingest: Ingest{
			QueueCapacity: defaultQueueCapacity,
			IdlePollMS:    defaultIdlePollMS,
		},
		Notifications: Notifications{
			RequestTimeout: 10,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
