// Package logging sets up billfold's diagnostic log file.
//
// The TUI owns the terminal, so nothing may write to stdout or stderr while
// it runs. Diagnostics that the interface deliberately swallows, such as
// failed list refreshes, land here instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Open returns a logger appending to the file at path, creating parent
// directories as needed, and a closer for the underlying file.
func Open(path string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	logger := zerolog.New(file).With().Timestamp().Logger()
	return logger, file, nil
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
