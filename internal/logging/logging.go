package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Setup configures the logrus standard logger.
// level may be "debug", "info", "warn", or "error" (default "info").
// format may be "json" or "text" (default "text").
// Logs go to stderr so reports written to stdout stay clean.
func Setup(level, format string) {
	configure(log.StandardLogger(), level, format, os.Stderr)
}

// New returns a logger configured like Setup but writing to out.
func New(level, format string, out io.Writer) *log.Logger {
	l := log.New()
	configure(l, level, format, out)
	return l
}

func configure(l *log.Logger, level, format string, out io.Writer) {
	var lvl log.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = log.DebugLevel
	case "warn", "warning":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	default:
		lvl = log.InfoLevel
	}

	l.SetOutput(out)
	l.SetLevel(lvl)
	if strings.ToLower(format) == "json" {
		l.SetFormatter(&log.JSONFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	}
}
