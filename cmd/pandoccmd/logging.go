package main

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// newLogger returns the CLI logger. Warnings are shown by default,
// --verbose adds debug detail and --quiet keeps only errors.
func newLogger(w io.Writer, quiet, verbose bool) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})

	switch {
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	case verbose:
		logger.SetLevel(log.DebugLevel)
	default:
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}
