// Package logger wraps zap with a single package-level logger used across
// Tracer3D. Call Init once at process startup before using Log.
package logger

import "go.uber.org/zap"

// Log is the package-level logger. It is a no-op logger until Init is
// called, so packages that get exercised from tests without a call to
// Init (e.g. library users who bring their own logging) never nil-panic.
var Log *zap.Logger = zap.NewNop()

// Init configures Log for production use: JSON output, info level,
// epoch timestamps. Safe to call more than once; the last call wins.
func Init() error {
	l, err := zap.NewProduction()
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// InitDevelopment configures Log for human-readable console output,
// used by the CLI's -verbose flag.
func InitDevelopment() error {
	l, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	Log = l
	return nil
}
