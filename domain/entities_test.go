package domain

import (
	"context"
	"testing"
	"time"
)

func TestUser_HasPendingOTP(t *testing.T) {
	code := "123456"
	expiry := time.Now().Add(5 * time.Minute)

	tests := []struct {
		name     string
		user     *User
		expected bool
	}{
		{
			name:     "no challenge",
			user:     &User{ID: 1, Email: "a@x.com"},
			expected: false,
		},
		{
			name:     "challenge issued",
			user:     &User{ID: 1, Email: "a@x.com", OTPCode: &code, OTPExpiresAt: &expiry},
			expected: true,
		},
		{
			name:     "code without expiry is not a challenge",
			user:     &User{ID: 1, Email: "a@x.com", OTPCode: &code},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.HasPendingOTP(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAuditEvent_Builders(t *testing.T) {
	event := NewAuditEvent(OTPFailureEvent, 7).
		WithEmail("a@x.com").
		WithMetadata("reason", "mismatch").
		WithClientContext(&ClientContext{IPAddress: "10.0.0.1", UserAgent: "curl", RequestID: "req-1"}).
		WithError(ErrOTPInvalid)

	if event.EventType != OTPFailureEvent {
		t.Errorf("expected event type %s, got %s", OTPFailureEvent, event.EventType)
	}
	if event.UserID != 7 || event.Email != "a@x.com" {
		t.Errorf("unexpected identity: %d %s", event.UserID, event.Email)
	}
	if event.Success {
		t.Error("event with error should not be successful")
	}
	if event.ErrorMsg != "invalid otp code" {
		t.Errorf("unexpected error message %q", event.ErrorMsg)
	}
	if event.Metadata["reason"] != "mismatch" {
		t.Errorf("metadata not recorded: %v", event.Metadata)
	}
	if event.IPAddress != "10.0.0.1" || event.UserAgent != "curl" || event.RequestID != "req-1" {
		t.Errorf("client context not copied: %+v", event)
	}
	if event.Timestamp.Location() != time.UTC {
		t.Error("timestamp should be UTC")
	}
}

func TestAuditEvent_WithNilValues(t *testing.T) {
	event := NewAuditEvent(UserLoginEvent, 1).WithClientContext(nil).WithError(nil)
	if event.Success {
		t.Error("WithError(nil) still marks the event as failed")
	}
	if event.ErrorMsg != "" {
		t.Errorf("expected empty error message, got %q", event.ErrorMsg)
	}
	if event.IPAddress != "" {
		t.Error("nil client context should leave fields empty")
	}
}

func TestClientContext_RoundTrip(t *testing.T) {
	ctx := context.Background()
	if ClientContextFrom(ctx) != nil {
		t.Fatal("expected nil client context on empty context")
	}

	cc := &ClientContext{IPAddress: "127.0.0.1", RequestID: "abc"}
	ctx = WithClientContext(ctx, cc)
	got := ClientContextFrom(ctx)
	if got == nil || got.RequestID != "abc" {
		t.Fatalf("unexpected client context: %+v", got)
	}
}
