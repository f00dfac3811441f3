// Package log is the logging seam between animforge's library packages
// and whatever logging backend the embedding program uses.
//
// Library code accepts a Logger and attaches context with the typed
// Field constructors:
//
//	logger.Info("ingested frames", log.Int("count", n))
//
// NewZerologAdapter gives console output on stderr, and any existing
// zerolog.Logger can be wrapped with NewZerologAdapterWithLogger. The
// no-op logger is the default when none is supplied.
package log
