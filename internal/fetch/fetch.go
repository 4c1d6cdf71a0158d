// Package fetch retrieves remote schema sources with a local cache
// fallback, so that generation keeps working offline once a source has
// been fetched successfully at least once.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const requestTimeout = 30 * time.Second

// Source reads the named source, either from its local path or by
// fetching its URL through the cache.
func Source(ctx context.Context, name, url, path, cacheDir string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", name, err)
		}
		return data, nil
	}
	return Remote(ctx, name, url, cacheDir)
}

// Remote fetches a URL and refreshes its cache entry. On a fetch
// failure it falls back to the cached copy; the error is fatal only
// when neither is available.
func Remote(ctx context.Context, name, url, cacheDir string) ([]byte, error) {
	cachePath := filepath.Join(cacheDir, name+".txt")

	data, fetchErr := get(ctx, url)
	if fetchErr == nil {
		if err := writeCache(cachePath, data); err != nil {
			slog.Warn("could not refresh cache", "source", name, "error", err)
		}
		return data, nil
	}

	slog.Warn("fetch failed, trying cache", "source", name, "url", url, "error", fetchErr)
	cached, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, fmt.Errorf("source %s unavailable: fetch failed (%v) and no cached copy at %s", name, fetchErr, cachePath)
	}
	return cached, nil
}

func get(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func writeCache(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
