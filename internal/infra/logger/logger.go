// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"absentee_notification_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance
var Log = logrus.New()

// Init configures the global logger from the application configuration.
func Init(cfg *config.AppConfig) {
	configure(Log, os.Stdout, cfg.LogLevel, cfg.Environment)

	Log.Info("Logger initialized successfully.")
	Log.Debugf("Log level set to: %s", Log.GetLevel().String())
	Log.Debugf("Log format set for environment: %s", cfg.Environment)
}

func configure(l *logrus.Logger, out io.Writer, level, environment string) {
	l.SetOutput(out)

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		l.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", level, err)
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	switch strings.ToLower(environment) {
	case "production", "staging":
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
}

// Component returns an entry tagged with the subsystem name, the way every
// service and handler in the bot logs.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
