package mocks

import (
	"context"
	"sync"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
)

// SentOTP records one dispatch made through MockOTPDispatcher
type SentOTP struct {
	To          string
	Code        string
	DisplayName string
}

// MockOTPDispatcher implements domain.OTPDispatcher and records every call
type MockOTPDispatcher struct {
	SendOTPFunc func(ctx context.Context, to, code, displayName string) bool

	mu   sync.Mutex
	sent []SentOTP
}

// NewMockOTPDispatcher creates a dispatcher that accepts every message
func NewMockOTPDispatcher() *MockOTPDispatcher {
	return &MockOTPDispatcher{}
}

// SendOTP records the message and reports success unless SendOTPFunc says otherwise
func (m *MockOTPDispatcher) SendOTP(ctx context.Context, to, code, displayName string) bool {
	m.mu.Lock()
	m.sent = append(m.sent, SentOTP{To: to, Code: code, DisplayName: displayName})
	m.mu.Unlock()

	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, to, code, displayName)
	}
	return true
}

// Sent returns a copy of the recorded dispatches
func (m *MockOTPDispatcher) Sent() []SentOTP {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentOTP, len(m.sent))
	copy(out, m.sent)
	return out
}

// Last returns the most recent dispatch, if any
func (m *MockOTPDispatcher) Last() (SentOTP, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return SentOTP{}, false
	}
	return m.sent[len(m.sent)-1], true
}

var _ domain.OTPDispatcher = (*MockOTPDispatcher)(nil)
