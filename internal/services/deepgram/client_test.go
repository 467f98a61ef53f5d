package deepgram_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"murmur/internal/services"
	"murmur/internal/services/deepgram"
)

func TestTranscribeSendsExpectedRequest(t *testing.T) {
	var captured struct {
		auth        string
		contentType string
		query       map[string]string
		body        []byte
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.auth = r.Header.Get("Authorization")
		captured.contentType = r.Header.Get("Content-Type")
		captured.query = map[string]string{}
		for key := range r.URL.Query() {
			captured.query[key] = r.URL.Query().Get(key)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		captured.body = body
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":"hello world"}]}]}}`))
	}))
	defer server.Close()

	client := deepgram.NewClient(deepgram.Config{APIKey: "secret", BaseURL: server.URL})
	transcript, err := client.Transcribe(context.Background(), []byte("RIFFdata"), "audio/mpeg")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if transcript != "hello world" {
		t.Fatalf("transcript = %q", transcript)
	}
	if captured.auth != "Token secret" {
		t.Fatalf("authorization = %q", captured.auth)
	}
	if captured.contentType != "audio/mpeg" {
		t.Fatalf("content type = %q", captured.contentType)
	}
	expectedQuery := map[string]string{
		"model":        "nova-2",
		"smart_format": "true",
		"punctuate":    "true",
		"paragraphs":   "true",
		"diarize":      "true",
		"language":     "en",
	}
	for key, want := range expectedQuery {
		if got := captured.query[key]; got != want {
			t.Fatalf("query %s = %q, want %q", key, got, want)
		}
	}
	if string(captured.body) != "RIFFdata" {
		t.Fatalf("body = %q", captured.body)
	}
}

func TestTranscribeServerErrorIsTranscriberError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := deepgram.NewClient(deepgram.Config{APIKey: "secret", BaseURL: server.URL})
	_, err := client.Transcribe(context.Background(), []byte("x"), "audio/wav")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !errors.Is(err, services.ErrTranscriber) {
		t.Fatalf("error not tagged ErrTranscriber: %v", err)
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("error missing status/body detail: %v", err)
	}
}

func TestTranscribeMissingTranscriptYieldsEmptyString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":{"channels":[]}}`))
	}))
	defer server.Close()

	client := deepgram.NewClient(deepgram.Config{APIKey: "secret", BaseURL: server.URL})
	transcript, err := client.Transcribe(context.Background(), []byte("x"), "audio/wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if transcript != "" {
		t.Fatalf("transcript = %q, want empty", transcript)
	}
}

func TestTranscribeRequiresAPIKey(t *testing.T) {
	client := deepgram.NewClient(deepgram.Config{})
	if _, err := client.Transcribe(context.Background(), []byte("x"), "audio/wav"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestMIMEType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.wav", "audio/wav"},
		{"a.mp3", "audio/mpeg"},
		{"a.m4a", "audio/mp4"},
		{"a.ogg", "audio/ogg"},
		{"a.flac", "audio/flac"},
		{"a.aac", "audio/aac"},
		{"A.MP3", "audio/mpeg"},
		{"a.unknown", "audio/wav"},
	}
	for _, tc := range tests {
		if got := deepgram.MIMEType(tc.path); got != tc.want {
			t.Fatalf("MIMEType(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
