// Package download saves generated invoice documents to local disk.
//
// This is billfold's stand-in for a browser's download action: the generate
// call produces a location and a suggested filename, and this package
// performs the separate local effect of fetching and writing the file. The
// two steps fail independently and carry distinct error context even though
// the UI folds them into one status message.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fetchTimeout = 30 * time.Second

// Save fetches the document at url and writes it to dir under filename,
// returning the path written. The filename must be a bare name; anything that
// resolves outside dir is refused.
func Save(ctx context.Context, url, filename, dir string) (string, error) {
	name, err := sanitizeFilename(filename)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch document: status %d", resp.StatusCode)
	}

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create document file: %w", err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write document: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close document: %w", err)
	}
	return path, nil
}

func sanitizeFilename(filename string) (string, error) {
	name := strings.TrimSpace(filename)
	if name == "" {
		return "", fmt.Errorf("empty filename")
	}
	base := filepath.Base(filepath.Clean(name))
	if base != name || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("unsafe filename %q", filename)
	}
	return base, nil
}
