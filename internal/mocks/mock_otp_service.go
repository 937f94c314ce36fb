package mocks

import (
	"time"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
)

// MockOTPCode is the code issued by MockOTPService unless IssueFunc is set
const MockOTPCode = "123456"

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc  func() (*domain.OTPChallenge, error)
	VerifyFunc func(storedCode *string, submittedCode string, expiresAt *time.Time) error
	TTLValue   time.Duration
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{TTLValue: 5 * time.Minute}
}

// Issue returns a fixed challenge valid for TTLValue
func (m *MockOTPService) Issue() (*domain.OTPChallenge, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc()
	}
	return &domain.OTPChallenge{
		Code:      MockOTPCode,
		ExpiresAt: time.Now().Add(m.TTLValue),
	}, nil
}

// Verify compares codes only; expiry is ignored unless VerifyFunc is set
func (m *MockOTPService) Verify(storedCode *string, submittedCode string, expiresAt *time.Time) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(storedCode, submittedCode, expiresAt)
	}
	if storedCode == nil || submittedCode == "" {
		return domain.ErrOTPMissing
	}
	if *storedCode != submittedCode {
		return domain.ErrOTPInvalid
	}
	return nil
}

func (m *MockOTPService) TTL() time.Duration {
	return m.TTLValue
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
