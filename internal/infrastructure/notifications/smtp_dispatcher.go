package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"github.com/wneessen/go-mail"
)

// mailSender is the part of *mail.Client the dispatcher uses
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPDispatcher sends OTP emails through an SMTP relay
type SMTPDispatcher struct {
	sender  mailSender
	from    string
	appName string
	ttl     time.Duration
	logger  *slog.Logger
}

type SMTPSettings struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	TLSPolicy string
}

// NewSMTPDispatcher creates an SMTP-backed dispatcher
func NewSMTPDispatcher(settings SMTPSettings, appName string, ttl time.Duration, logger *slog.Logger) (domain.OTPDispatcher, error) {
	opts := []mail.Option{
		mail.WithPort(settings.Port),
		mail.WithTLSPortPolicy(parseTLSPolicy(settings.TLSPolicy)),
		mail.WithTimeout(10 * time.Second),
	}
	if settings.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(settings.Username),
			mail.WithPassword(settings.Password))
	}

	client, err := mail.NewClient(settings.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return newSMTPDispatcher(client, settings.From, appName, ttl, logger), nil
}

func newSMTPDispatcher(sender mailSender, from, appName string, ttl time.Duration, logger *slog.Logger) *SMTPDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPDispatcher{
		sender:  sender,
		from:    from,
		appName: appName,
		ttl:     ttl,
		logger:  logger,
	}
}

// SendOTP implements domain.OTPDispatcher
func (d *SMTPDispatcher) SendOTP(ctx context.Context, to, code, displayName string) bool {
	msg, err := d.buildMessage(to, code, displayName)
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to build otp email", slog.String("to", to), slog.String("error", err.Error()))
		return false
	}

	if err := d.sender.DialAndSendWithContext(ctx, msg); err != nil {
		d.logger.ErrorContext(ctx, "failed to send otp email", slog.String("to", to), slog.String("error", err.Error()))
		return false
	}

	d.logger.InfoContext(ctx, "otp email sent", slog.String("to", to))
	return true
}

func (d *SMTPDispatcher) buildMessage(to, code, displayName string) (*mail.Msg, error) {
	rendered, err := RenderOTPMessage(d.appName, code, displayName, d.ttl)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(d.appName, d.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(rendered.Subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, rendered.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, rendered.HTML)

	return msg, nil
}

func parseTLSPolicy(policy string) mail.TLSPolicy {
	switch policy {
	case "opportunistic":
		return mail.TLSOpportunistic
	case "none":
		return mail.NoTLS
	default:
		return mail.TLSMandatory
	}
}
