package mocks

import (
	"context"
	"time"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc  func(ctx context.Context, username, email, password string) (*domain.User, error)
	LoginFunc     func(ctx context.Context, email, password string) (*domain.User, error)
	VerifyOTPFunc func(ctx context.Context, email, code string) (*domain.User, error)
	ResendOTPFunc func(ctx context.Context, email string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, email, password)
	}
	// Default behavior: return a mock user with a pending challenge
	code := MockOTPCode
	expires := time.Now().Add(5 * time.Minute)
	return &domain.User{
		ID:           1,
		Username:     username,
		Email:        email,
		PasswordHash: "hashed_" + password,
		OTPCode:      &code,
		OTPExpiresAt: &expires,
	}, nil
}

// Login checks credentials and issues a challenge
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.User{ID: 1, Username: "testuser", Email: email}, nil
}

// VerifyOTP completes a login
func (m *MockAuthService) VerifyOTP(ctx context.Context, email, code string) (*domain.User, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, code)
	}
	if code != MockOTPCode {
		return nil, domain.ErrOTPInvalid
	}
	return &domain.User{ID: 1, Username: "testuser", Email: email}, nil
}

// ResendOTP issues a fresh challenge
func (m *MockAuthService) ResendOTP(ctx context.Context, email string) error {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, email)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
