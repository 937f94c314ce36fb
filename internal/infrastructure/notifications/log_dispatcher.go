package notifications

import (
	"context"
	"log/slog"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
)

// LogDispatcher writes codes to the log instead of sending them.
// It is meant for local development only.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) domain.OTPDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDispatcher{logger: logger}
}

// SendOTP implements domain.OTPDispatcher
func (d *LogDispatcher) SendOTP(ctx context.Context, to, code, displayName string) bool {
	d.logger.InfoContext(ctx, "otp issued",
		slog.String("to", to),
		slog.String("display_name", displayName),
		slog.String("code", code))
	return true
}
