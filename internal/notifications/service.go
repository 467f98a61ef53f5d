package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"murmur/internal/config"
)

const userAgent = "Murmur/0.1.0"

// Service defines the notification surface exposed to the pipeline.
type Service interface {
	NotifyStarted(ctx context.Context, monitorDir string) error
	NotifyStopped(ctx context.Context) error
	NotifyNoteCreated(ctx context.Context, audioPath, notePath string) error
	NotifyJobFailed(ctx context.Context, audioPath string, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyStarted(ctx context.Context, monitorDir string) error {
	monitorDir = strings.TrimSpace(monitorDir)
	data := payload{
		title:   "Murmur - Started",
		message: fmt.Sprintf("Watching %s for new audio", monitorDir),
		tags:    []string{"murmur", "daemon", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyStopped(ctx context.Context) error {
	data := payload{
		title:   "Murmur - Stopped",
		message: "Audio ingest stopped",
		tags:    []string{"murmur", "daemon", "stopped"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyNoteCreated(ctx context.Context, audioPath, notePath string) error {
	audioPath = strings.TrimSpace(audioPath)
	notePath = strings.TrimSpace(notePath)
	message := fmt.Sprintf("Note created for %s", filepath.Base(audioPath))
	if notePath != "" {
		message = fmt.Sprintf("%s\nFile: %s", message, notePath)
	}
	data := payload{
		title:   "Murmur - Note Created",
		message: message,
		tags:    []string{"murmur", "note", "created"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyJobFailed(ctx context.Context, audioPath string, err error) error {
	var builder strings.Builder
	builder.WriteString("Job failed")
	if audioPath = strings.TrimSpace(audioPath); audioPath != "" {
		builder.WriteString(" for ")
		builder.WriteString(filepath.Base(audioPath))
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Murmur - Error",
		message:  builder.String(),
		tags:     []string{"murmur", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Murmur - Test",
		message:  "Notification system test",
		tags:     []string{"murmur", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyStarted(context.Context, string) error              { return nil }
func (noopService) NotifyStopped(context.Context) error                     { return nil }
func (noopService) NotifyNoteCreated(context.Context, string, string) error { return nil }
func (noopService) NotifyJobFailed(context.Context, string, error) error    { return nil }
func (noopService) TestNotification(context.Context) error                  { return nil }
