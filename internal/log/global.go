package log

import "sync"

var (
	globalMu     sync.Mutex
	globalLogger *Logger
)

// SetDefaultLogger installs the process-wide default logger.
func SetDefaultLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// DefaultLogger returns the process-wide default logger, creating one
// with the default configuration on first use.
func DefaultLogger() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalLogger == nil {
		globalLogger = Default()
	}
	return globalLogger
}
