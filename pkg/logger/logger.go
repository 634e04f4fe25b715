package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Init must run before it is used.
var Log *logrus.Logger

// Init configures Log from LOG_LEVEL (default "info") and LOG_FORMAT
// ("json" or text) and writes to out. A nil out means stderr, which keeps
// stdout free for the TUI and report output.
func Init(out io.Writer) *logrus.Logger {
	Log = New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), out)
	return Log
}

// New builds a logger without touching the global.
func New(levelName, format string, out io.Writer) *logrus.Logger {
	l := logrus.New()

	if levelName == "" {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)
	return l
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
