// Package trace provides dm's diagnostic logger, off by default. The -@
// flag turns it on, directing output to a file or to the console. User
// messaging goes through the ui package; this log is for developers and
// carries the detail that never reaches the terminal, such as full
// unhandled-error dumps.
package trace

import (
	"log/slog"
	"os"

	"github.com/caltechlibrary/documentarist/internal/status"
)

var logger = slog.New(slog.DiscardHandler)

// Enable switches tracing on, writing to dest. The special destination "-"
// means the console (stderr). Any other value names a file, created or
// truncated. The file stays open for the remainder of the process; the
// process exit releases it.
func Enable(dest string) error {
	w := os.Stderr
	if dest != "-" {
		f, err := os.Create(dest)
		if err != nil {
			return status.FileErrf("cannot open trace destination %s: %v", dest, err)
		}
		w = f
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Debug("trace started")
	return nil
}

// Log returns the current trace logger. Safe to call whether or not
// tracing is enabled; when disabled, records are discarded.
func Log() *slog.Logger {
	return logger
}
