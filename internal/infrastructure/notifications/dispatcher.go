package notifications

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
)

// Settings selects and configures an OTP dispatcher
type Settings struct {
	Driver  string
	AppName string
	TTL     time.Duration
	SMTP    SMTPSettings

	TwilioAccountSID       string
	TwilioAuthToken        string
	TwilioVerifyServiceSID string
}

// NewDispatcher builds the dispatcher named by settings.Driver
func NewDispatcher(settings Settings, logger *slog.Logger) (domain.OTPDispatcher, error) {
	switch settings.Driver {
	case "smtp":
		return NewSMTPDispatcher(settings.SMTP, settings.AppName, settings.TTL, logger)
	case "twilio":
		return NewTwilioDispatcher(settings.TwilioAccountSID, settings.TwilioAuthToken, settings.TwilioVerifyServiceSID, logger), nil
	case "log", "":
		return NewLogDispatcher(logger), nil
	default:
		return nil, fmt.Errorf("unknown notifications driver %q", settings.Driver)
	}
}
