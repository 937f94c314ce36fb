package notifications

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

// DefaultAppName appears in the subject and body of every OTP message
const DefaultAppName = "Online Exam System"

// OTPMessage is a rendered verification email
type OTPMessage struct {
	Subject string
	Text    string
	HTML    string
}

type messageData struct {
	AppName     string
	DisplayName string
	Code        string
	Validity    string
	Year        int
}

var otpTextTemplate = texttemplate.Must(texttemplate.New("otp.txt").Parse(
	`Hello {{.DisplayName}},

Your {{.AppName}} verification code is: {{.Code}}

This code expires in {{.Validity}}.
If you didn't request this code, please ignore this email. Never share it with anyone.
`))

var otpHTMLTemplate = htmltemplate.Must(htmltemplate.New("otp.html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 20px auto; background: #ffffff; border-radius: 10px; overflow: hidden;">
    <div style="background: #1e3a8a; color: #ffffff; padding: 30px; text-align: center;">
      <h1 style="margin: 0; font-size: 24px;">{{.AppName}}</h1>
    </div>
    <div style="padding: 40px 30px;">
      <h2>Hello, {{.DisplayName}}!</h2>
      <p>Use the code below to verify your email address:</p>
      <div style="background: #f0f4ff; border: 2px dashed #1e3a8a; border-radius: 10px; padding: 20px; text-align: center; margin: 30px 0;">
        <div style="font-size: 36px; font-weight: bold; color: #1e3a8a; letter-spacing: 8px;">{{.Code}}</div>
      </div>
      <p><strong>Important:</strong> this code expires in <strong>{{.Validity}}</strong>.</p>
      <p>If you didn't request this code, please ignore this email.</p>
    </div>
    <div style="background: #f8f8f8; padding: 20px; text-align: center; font-size: 12px; color: #666666;">
      <p>&copy; {{.Year}} {{.AppName}}</p>
    </div>
  </div>
</body>
</html>
`))

// RenderOTPMessage builds the subject and both bodies for a verification email
func RenderOTPMessage(appName, code, displayName string, ttl time.Duration) (OTPMessage, error) {
	if appName == "" {
		appName = DefaultAppName
	}
	if strings.TrimSpace(displayName) == "" {
		displayName = "User"
	}

	data := messageData{
		AppName:     appName,
		DisplayName: displayName,
		Code:        code,
		Validity:    formatValidity(ttl),
		Year:        time.Now().Year(),
	}

	var text, html bytes.Buffer
	if err := otpTextTemplate.Execute(&text, data); err != nil {
		return OTPMessage{}, fmt.Errorf("failed to render text body: %w", err)
	}
	if err := otpHTMLTemplate.Execute(&html, data); err != nil {
		return OTPMessage{}, fmt.Errorf("failed to render html body: %w", err)
	}

	return OTPMessage{
		Subject: "Your verification code - " + appName,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

// formatValidity renders a TTL as "5 minutes", "1 minute" or "90 seconds"
func formatValidity(ttl time.Duration) string {
	if ttl >= time.Minute && ttl%time.Minute == 0 {
		if m := int(ttl / time.Minute); m != 1 {
			return fmt.Sprintf("%d minutes", m)
		}
		return "1 minute"
	}
	return fmt.Sprintf("%d seconds", int(ttl/time.Second))
}
