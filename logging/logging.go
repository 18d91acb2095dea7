// Package logging configures the process-wide logger used by all the
// instrumentation components.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Level selects the minimum severity that is emitted.
type Level int

// The supported log levels, ordered from most to least verbose.
const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case Debug:
		return logrus.DebugLevel
	case Info:
		return logrus.InfoLevel
	case Warn:
		return logrus.WarnLevel
	case Error:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// ParseLevel converts a level name into a Level. Unknown names fall back to
// Info.
func ParseLevel(name string) Level {
	switch name {
	case "debug":
		return Debug
	case "info":
		return Info
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

// Init sets up the process logger at the given level. The NEUPIM_LOG
// environment variable, when set, overrides the level argument so that runs
// can be made more verbose without recompiling the driver.
func Init(level Level) {
	if env := os.Getenv("NEUPIM_LOG"); env != "" {
		level = ParseLevel(env)
	}

	logrus.SetLevel(level.logrusLevel())
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logrus.Info("Logger initialized")
}
