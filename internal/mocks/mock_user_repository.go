package mocks

import (
	"context"
	"time"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc                func(ctx context.Context, user *domain.User) error
	FindByEmailFunc           func(ctx context.Context, email string) (*domain.User, error)
	FindByEmailOrUsernameFunc func(ctx context.Context, email, username string) (*domain.User, error)
	FindByIDFunc              func(ctx context.Context, id uint) (*domain.User, error)
	UpdateOTPFunc             func(ctx context.Context, userID uint, code string, expiresAt time.Time) error
	ClearOTPFunc              func(ctx context.Context, userID uint) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create stores a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByEmailOrUsername finds a user matching either identifier
func (m *MockUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	if m.FindByEmailOrUsernameFunc != nil {
		return m.FindByEmailOrUsernameFunc(ctx, email, username)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// UpdateOTP overwrites the user's challenge
func (m *MockUserRepository) UpdateOTP(ctx context.Context, userID uint, code string, expiresAt time.Time) error {
	if m.UpdateOTPFunc != nil {
		return m.UpdateOTPFunc(ctx, userID, code, expiresAt)
	}
	return nil
}

// ClearOTP removes the user's challenge
func (m *MockUserRepository) ClearOTP(ctx context.Context, userID uint) error {
	if m.ClearOTPFunc != nil {
		return m.ClearOTPFunc(ctx, userID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
