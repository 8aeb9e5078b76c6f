package main

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"go.uber.org/automaxprocs/maxprocs"
)

// newLogger returns a text logger on w. Quiet keeps errors only and
// verbose adds debug output; quiet wins when both are set.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

var maxprocsOnce sync.Once

// configureMaxProcs sets GOMAXPROCS from the container CPU quota once per
// process. Messages are logged at debug level.
func configureMaxProcs(logger *slog.Logger) {
	maxprocsOnce.Do(func() {
		// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
		// in which case Go runtime defaults apply.
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			logger.Debug(fmt.Sprintf(format, args...))
		}))
	})
}
