package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"murmur/internal/fileutil"
)

func TestFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	size, err := fileutil.FileSize(path)
	if err != nil {
		t.Fatalf("FileSize: %v", err)
	}
	if size != 2048 {
		t.Fatalf("size = %d, want 2048", size)
	}
}

func TestFileSizeMissing(t *testing.T) {
	if _, err := fileutil.FileSize(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")

	if err := fileutil.WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != "second" {
		t.Fatalf("body = %q", body)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}

func TestBirthTimeNotAfterNow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp3")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	created, err := fileutil.BirthTime(path)
	if err != nil {
		t.Fatalf("BirthTime: %v", err)
	}
	if created.After(time.Now().Add(time.Minute)) {
		t.Fatalf("birth time in the future: %v", created)
	}
}
