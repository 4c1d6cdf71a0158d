package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRemote_FetchAndCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("\"events\"\n{\n}\n"))
	}))
	defer srv.Close()

	cacheDir := t.TempDir()
	data, err := Remote(context.Background(), "core", srv.URL, cacheDir)
	if err != nil {
		t.Fatalf("Remote() error: %v", err)
	}
	if !strings.Contains(string(data), "events") {
		t.Errorf("Remote() = %q, want event schema body", data)
	}

	cached, err := os.ReadFile(filepath.Join(cacheDir, "core.txt"))
	if err != nil {
		t.Fatalf("cache not written: %v", err)
	}
	if string(cached) != string(data) {
		t.Errorf("cache = %q, want %q", cached, data)
	}
}

func TestRemote_CacheFallback(t *testing.T) {
	cacheDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(cacheDir, "core.txt"), []byte("cached"), 0644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	data, err := Remote(context.Background(), "core", srv.URL, cacheDir)
	if err != nil {
		t.Fatalf("Remote() error: %v", err)
	}
	if string(data) != "cached" {
		t.Errorf("Remote() = %q, want cached copy", data)
	}
}

func TestRemote_NoFetchNoCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Remote(context.Background(), "core", srv.URL, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "unavailable") {
		t.Errorf("Remote() error = %v, want unavailable error", err)
	}
}

func TestSource_LocalPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.txt")
	if err := os.WriteFile(path, []byte("local"), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := Source(context.Background(), "mod", "", path, "")
	if err != nil {
		t.Fatalf("Source() error: %v", err)
	}
	if string(data) != "local" {
		t.Errorf("Source() = %q, want %q", data, "local")
	}
}
