package undriven

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the pass's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs a logger for mark-transition tracing. Call before Check;
// the pass itself is single-threaded and never swaps the logger mid-run.
func SetLogger(l *zap.Logger) {
	logger = l
}
