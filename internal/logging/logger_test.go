package logging_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"murmur/internal/logging"
)

func logFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "murmur.log")
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func TestConsoleFormatIncludesComponentPrefix(t *testing.T) {
	path := logFile(t)
	logger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "console",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	component := logging.NewComponentLogger(logger, "watch")
	component.Info("watching directory", logging.String(logging.FieldPath, "/incoming"))

	out := readLog(t, path)
	if !strings.Contains(out, "INFO watch: watching directory") {
		t.Fatalf("console line missing component prefix:\n%s", out)
	}
	if !strings.Contains(out, "path=/incoming") {
		t.Fatalf("console line missing flattened attr:\n%s", out)
	}
}

func TestConsoleFormatQuotesSpacedValues(t *testing.T) {
	path := logFile(t)
	logger, err := logging.New(logging.Options{
		Format:      "console",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Warn("replay failed", logging.Error(errors.New("player exited with status 1")))

	out := readLog(t, path)
	if !strings.Contains(out, `error="player exited with status 1"`) {
		t.Fatalf("spaced value not quoted:\n%s", out)
	}
}

func TestJSONFormatUsesStandardKeys(t *testing.T) {
	path := logFile(t)
	logger, err := logging.New(logging.Options{
		Format:      "json",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("job complete", logging.String(logging.FieldJobID, "abc"))

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, path))), &record); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if record["msg"] != "job complete" {
		t.Fatalf("msg = %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("level = %v", record["level"])
	}
	if record["job_id"] != "abc" {
		t.Fatalf("job_id = %v", record["job_id"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("missing ts key")
	}
}

func TestLevelFiltersLowerRecords(t *testing.T) {
	path := logFile(t)
	logger, err := logging.New(logging.Options{
		Level:       "warn",
		Format:      "console",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("visible")

	out := readLog(t, path)
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info record not filtered at warn level:\n%s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn record missing:\n%s", out)
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "logfmt"})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
