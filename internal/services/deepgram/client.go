package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"murmur/internal/services"
)

const defaultHTTPTimeout = 30 * time.Second

// Config captures the runtime settings required to talk to the transcription API.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Language       string
	TimeoutSeconds int
}

// Client wraps the Deepgram pre-recorded listen API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a transcriber client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			Model:          strings.TrimSpace(cfg.Model),
			Language:       strings.TrimSpace(cfg.Language),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = "https://api.deepgram.com/v1/listen"
	}
	if client.cfg.Model == "" {
		client.cfg.Model = "nova-2"
	}
	if client.cfg.Language == "" {
		client.cfg.Language = "en"
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// listenResponse mirrors the slice of the Deepgram payload the pipeline needs.
type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe posts raw audio bytes with the given content type and returns the
// first alternative's transcript. A response carrying no transcript yields the
// empty string without an error; callers decide how loudly to complain.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", services.Wrap(services.ErrTranscriber, "deepgram", "transcribe", "api key required", nil)
	}
	if len(audio) == 0 {
		return "", services.Wrap(services.ErrTranscriber, "deepgram", "transcribe", "empty audio payload", nil)
	}
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "audio/wav"
	}

	endpoint, err := c.buildURL()
	if err != nil {
		return "", services.Wrap(services.ErrTranscriber, "deepgram", "transcribe", "build url", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return "", services.Wrap(services.ErrTranscriber, "deepgram", "transcribe", "new request", err)
	}
	req.Header.Set("Authorization", "Token "+c.cfg.APIKey)
	req.Header.Set("Content-Type", mimeType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTranscriber, "deepgram", "transcribe", "http error", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTranscriber, "deepgram", "transcribe", "read body", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", services.Wrap(services.ErrTranscriber, "deepgram", "transcribe",
			fmt.Sprintf("http %d: %s", resp.StatusCode, bodySnippet(body)), nil)
	}

	var parsed listenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", services.Wrap(services.ErrTranscriber, "deepgram", "transcribe", "decode response", err)
	}
	return extractTranscript(parsed), nil
}

func (c *Client) buildURL() (string, error) {
	parsed, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	query.Set("model", c.cfg.Model)
	query.Set("smart_format", "true")
	query.Set("punctuate", "true")
	query.Set("paragraphs", "true")
	query.Set("diarize", "true")
	query.Set("language", c.cfg.Language)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func extractTranscript(parsed listenResponse) string {
	if len(parsed.Results.Channels) == 0 {
		return ""
	}
	alternatives := parsed.Results.Channels[0].Alternatives
	if len(alternatives) == 0 {
		return ""
	}
	return alternatives[0].Transcript
}

func bodySnippet(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	const limit = 200
	if len(trimmed) > limit {
		return trimmed[:limit] + "..."
	}
	if trimmed == "" {
		return "<empty>"
	}
	return trimmed
}

// HealthCheck verifies the API key is present without issuing a request.
func (c *Client) HealthCheck(context.Context) error {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return errors.New("deepgram health: api key required")
	}
	return nil
}
