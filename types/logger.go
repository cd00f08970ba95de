package types

// Logger defines methods for structured logging.
//
// Compatible with zap.SugaredLogger and log/slog style key-value logging.
type Logger interface {
	// Debug logs a message at DebugLevel with alternating key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs a message at InfoLevel with alternating key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a message at WarnLevel with alternating key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs a message at ErrorLevel with alternating key-value pairs.
	Error(msg string, keysAndValues ...any)

	// Fatal logs a message and terminates the process with os.Exit(1).
	Fatal(msg string, keysAndValues ...any)
}
