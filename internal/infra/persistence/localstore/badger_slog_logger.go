package localstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// badgerSlogLogger forwards Badger's printf-style logging to slog.
// Info and debug chatter is demoted to debug.
type badgerSlogLogger struct {
	logger *slog.Logger
}

func newBadgerSlogLogger(logger *slog.Logger) *badgerSlogLogger {
	return &badgerSlogLogger{logger: logger}
}

func (l *badgerSlogLogger) log(level slog.Level, format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}

	l.logger.LogAttrs(context.Background(), level, "Badger",
		slog.String("message", strings.TrimSpace(fmt.Sprintf(format, args...))),
	)
}

func (l *badgerSlogLogger) Errorf(format string, args ...any) {
	l.log(slog.LevelError, format, args...)
}

func (l *badgerSlogLogger) Warningf(format string, args ...any) {
	l.log(slog.LevelWarn, format, args...)
}

func (l *badgerSlogLogger) Infof(format string, args ...any) {
	l.log(slog.LevelDebug, format, args...)
}

func (l *badgerSlogLogger) Debugf(format string, args ...any) {
	l.log(slog.LevelDebug, format, args...)
}
