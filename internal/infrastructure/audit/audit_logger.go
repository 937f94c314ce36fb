package audit

import (
	"context"
	"log/slog"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
)

// SlogAuditLogger writes audit events as structured log records
type SlogAuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates an audit logger on top of logger
func NewAuditLogger(logger *slog.Logger) domain.AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAuditLogger{logger: logger.With(slog.String("component", "audit"))}
}

// LogEvent implements domain.AuditLogger
func (l *SlogAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	attrs := []slog.Attr{
		slog.String("event_type", string(event.EventType)),
		slog.Uint64("user_id", uint64(event.UserID)),
		slog.Bool("success", event.Success),
		slog.Time("timestamp", event.Timestamp),
	}
	if event.Email != "" {
		attrs = append(attrs, slog.String("email", event.Email))
	}
	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}
	if event.UserAgent != "" {
		attrs = append(attrs, slog.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", event.RequestID))
	}
	if event.ErrorMsg != "" {
		attrs = append(attrs, slog.String("error", event.ErrorMsg))
	}
	if len(event.Metadata) > 0 {
		metadata := make([]any, 0, len(event.Metadata))
		for k, v := range event.Metadata {
			metadata = append(metadata, slog.Any(k, v))
		}
		attrs = append(attrs, slog.Group("metadata", metadata...))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}

	l.logger.LogAttrs(ctx, level, "audit event", attrs...)
	return nil
}
