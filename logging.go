package monty

import (
	"io"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig configures ConfigureLogging. RotatePath, when non-empty, routes
// the log through a lumberjack.Logger so long-running embeddings (a server
// running many Monty programs) don't need their own log rotation story.
// Leaving RotatePath empty and Output nil discards all output, matching
// PrintWriter's and ResourceTracker's silent-by-default posture.
type LogConfig struct {
	Level      logrus.Level
	RotatePath string
	MaxSizeMB  int
	MaxBackups int
	Output     io.Writer // used verbatim if RotatePath is empty
}

// ConfigureLogging builds a *logrus.Entry suitable for passing to NewFrame
// and NewHeap. It is the core's only logging entry point — every internal
// component logs through the *logrus.Entry handed to it, never through the
// global logrus logger, so two concurrent runs (spec §5) never interleave
// log fields.
func ConfigureLogging(cfg LogConfig) *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(cfg.Level)
	logger.SetFormatter(&logrus.JSONFormatter{})

	switch {
	case cfg.RotatePath != "":
		logger.SetOutput(&lumberjack.Logger{
			Filename:   cfg.RotatePath,
			MaxSize:    maxOr(cfg.MaxSizeMB, 100),
			MaxBackups: cfg.MaxBackups,
		})
	case cfg.Output != nil:
		logger.SetOutput(cfg.Output)
	default:
		logger.SetOutput(io.Discard)
	}
	return logrus.NewEntry(logger)
}

func maxOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
