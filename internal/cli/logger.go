package cli

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger from validated level and format strings.
// Unknown levels fall back to info.
func NewLogger(levelStr, formatStr string, outW io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(outW)

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if formatStr == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
