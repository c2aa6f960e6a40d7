package sheetvrt

import (
	"context"
	"log/slog"
)

// Severity grades a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "critical"
	}
}

// Notifier receives user-facing messages.
type Notifier func(sev Severity, msg string)

// LogNotifier forwards notifications to logger.
func LogNotifier(logger *slog.Logger) Notifier {
	return func(sev Severity, msg string) {
		level := slog.LevelInfo
		switch sev {
		case SeverityWarning:
			level = slog.LevelWarn
		case SeverityCritical:
			level = slog.LevelError
		}
		logger.Log(context.Background(), level, msg)
	}
}
