// Package logging configures the process-wide zerolog logger. The TUI owns
// stdout and stderr, so diagnostics go to a file instead.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup directs the global logger to the given file path at the given
// level. An empty path discards all output. The returned closer is nil when
// logging is discarded.
func Setup(path, level string) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if path == "" {
		log.Logger = zerolog.New(io.Discard)
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}
