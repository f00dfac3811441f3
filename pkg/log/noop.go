package log

// NoopLogger discards every message. It is the default for sessions
// constructed without WithLogger, so library paths never nil-check.
type NoopLogger struct{}

// NewNoopLogger returns a logger that drops everything.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (NoopLogger) Debug(string, ...Field) {}
func (NoopLogger) Info(string, ...Field)  {}
func (NoopLogger) Warn(string, ...Field)  {}
func (NoopLogger) Error(string, ...Field) {}
