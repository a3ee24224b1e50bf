// Package epochlog provides the structured logger every epoch command and
// daemon shares, adapted from the teacher's pkg/log.
package epochlog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Options configures NewLogger. Where the teacher's NewLogger pulled
// Debug/Version/Commit/BuildDate off an *config.AppConfig, those come from
// cmd/epochd and cmd/epochctl's own build-info plumbing instead, since this
// subsystem has no GUI config to borrow them from.
type Options struct {
	Debug     bool
	Version   string
	Commit    string
	BuildDate string

	// LogDir is where the debug-mode log file is written. Ignored in
	// production mode, where output is always discarded.
	LogDir string
}

// NewLogger returns a logrus entry pre-populated with build metadata,
// mirroring the teacher's NewLogger (pkg/log/log.go).
func NewLogger(opts Options) *logrus.Entry {
	var log *logrus.Logger
	if opts.Debug || os.Getenv("DEBUG") == "TRUE" {
		log = newDevelopmentLogger(opts)
	} else {
		log = newProductionLogger()
	}

	log.Formatter = &logrus.JSONFormatter{}

	return log.WithFields(logrus.Fields{
		"debug":     opts.Debug,
		"version":   opts.Version,
		"commit":    opts.Commit,
		"buildDate": opts.BuildDate,
	})
}

func getLogLevel() logrus.Level {
	strLevel := os.Getenv("LOG_LEVEL")
	level, err := logrus.ParseLevel(strLevel)
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}

func newDevelopmentLogger(opts Options) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(getLogLevel())

	dir := opts.LogDir
	if dir == "" {
		dir = "."
	}
	file, err := os.OpenFile(filepath.Join(dir, "epochd.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.WithError(err).Warn("unable to log to file, falling back to stderr")
		return log
	}
	log.SetOutput(file)
	return log
}

func newProductionLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	log.SetLevel(logrus.ErrorLevel)
	return log
}
