package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatcher(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantType interface{}
		wantErr  bool
	}{
		{
			name:     "default is log",
			settings: Settings{},
			wantType: &LogDispatcher{},
		},
		{
			name: "smtp",
			settings: Settings{
				Driver:  "smtp",
				AppName: "App",
				TTL:     time.Minute,
				SMTP:    SMTPSettings{Host: "smtp.example.com", Port: 587, From: "no-reply@example.com"},
			},
			wantType: &SMTPDispatcher{},
		},
		{
			name: "twilio",
			settings: Settings{
				Driver:                 "twilio",
				TwilioAccountSID:       "AC000",
				TwilioAuthToken:        "token",
				TwilioVerifyServiceSID: "VA000",
			},
			wantType: &TwilioDispatcher{},
		},
		{
			name:     "unknown driver",
			settings: Settings{Driver: "pigeon"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDispatcher(tt.settings, discardLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, d)
		})
	}
}

func TestLogDispatcher_AlwaysSucceeds(t *testing.T) {
	d := NewLogDispatcher(discardLogger())
	assert.True(t, d.SendOTP(context.Background(), "a@x.com", "123456", "alice"))
}
