// Package logging wires up btclog: one rotating file+stdout backend
// shared by every subsystem, with each package pulling its own tagged
// sub-logger off it.
package logging

import (
	"os"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// backendLog is the root logging backend every subsystem logger is
// derived from.
var backendLog = btclog.NewBackend(logWriter{})

// logRotator rotates the on-disk log file once Init has been called;
// it is nil (and logging goes to stdout only) until then.
var logRotator *rotator.Rotator

// logWriter implements io.Writer by tee-ing to both stdout and the
// rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

// Init starts log rotation to logFile, keeping up to maxRolls
// uncompressed historical files. Call once at daemon startup before any
// SubLogger is used for file output to take effect.
func Init(logFile string, maxRolls int) error {
	r, err := rotator.New(logFile, 10*1024, false, maxRolls)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

// Flush finalises the rotator on shutdown; it is meant to be deferred
// at the top of the daemon's run loop. The rotator has no buffered
// state beyond the OS file handle, so Flush is a close.
func Flush() {
	if logRotator != nil {
		logRotator.Close()
	}
}

// SubLogger returns a tagged logger for subsystem, at the given level.
func SubLogger(subsystem string, level btclog.Level) btclog.Logger {
	l := backendLog.Logger(subsystem)
	l.SetLevel(level)
	return l
}

// SetLevel adjusts an already-issued SubLogger's level, used when
// loading per-subsystem debug levels from configuration.
func SetLevel(logger btclog.Logger, level btclog.Level) {
	logger.SetLevel(level)
}
