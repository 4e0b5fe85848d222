// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. It discards output until Init is called.
var Log = New(io.Discard)

// Init replaces Log with a logger writing to out, configured from LOG_LEVEL
// (default "info") and LOG_FORMAT ("json" or "text").
func Init(out io.Writer) {
	Log = New(out)
}

// New builds a logger writing to out using the LOG_LEVEL and LOG_FORMAT environment.
func New(out io.Writer) *logrus.Logger {
	log := logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: out != os.Stdout && out != os.Stderr,
		})
	}

	log.SetOutput(out)
	return log
}

// OpenFile opens path for appending and returns it as a log destination. An empty
// path yields io.Discard.
func OpenFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
