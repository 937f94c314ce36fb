package e2e

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"github.com/Ishikapathar/Online-Exam-Management/internal/infrastructure/auth"
	"github.com/Ishikapathar/Online-Exam-Management/internal/infrastructure/repositories"
)

// TestUserFactory inserts users straight into the database
type TestUserFactory struct {
	t           *testing.T
	db          *gorm.DB
	passwordSvc domain.PasswordService
}

// NewTestUserFactory creates a new test user factory
func NewTestUserFactory(t *testing.T, db *gorm.DB) *TestUserFactory {
	t.Helper()
	return &TestUserFactory{
		t:           t,
		db:          db,
		passwordSvc: auth.NewPasswordService(),
	}
}

// TestUserOptions configures test user creation
type TestUserOptions struct {
	Username  string
	Email     string
	Password  string
	OTPCode   *string
	OTPExpiry *time.Time
}

// DefaultTestUser returns a user with a unique name and no pending challenge
func DefaultTestUser() *TestUserOptions {
	suffix := randomSuffix()
	return &TestUserOptions{
		Username: "user_" + suffix,
		Email:    fmt.Sprintf("user_%s@example.com", suffix),
		Password: "Test123!@#",
	}
}

// CreateUserT creates a test user or fails the test
func (f *TestUserFactory) CreateUserT(opts *TestUserOptions) *domain.User {
	f.t.Helper()

	if opts == nil {
		opts = DefaultTestUser()
	}

	hashed, err := f.passwordSvc.Hash(opts.Password)
	if err != nil {
		f.t.Fatalf("Failed to hash password: %v", err)
	}

	dbUser := &repositories.DBUser{
		Username:     opts.Username,
		Email:        opts.Email,
		PasswordHash: hashed,
		OTPCode:      opts.OTPCode,
		OTPExpiresAt: opts.OTPExpiry,
	}
	if err := f.db.Create(dbUser).Error; err != nil {
		f.t.Fatalf("Failed to create test user: %v", err)
	}

	return &domain.User{
		ID:           dbUser.ID,
		Username:     dbUser.Username,
		Email:        dbUser.Email,
		PasswordHash: dbUser.PasswordHash,
		OTPCode:      dbUser.OTPCode,
		OTPExpiresAt: dbUser.OTPExpiresAt,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}

// storedUser reads the row for email, bypassing every cache
func storedUser(t *testing.T, db *gorm.DB, email string) *repositories.DBUser {
	t.Helper()

	var row repositories.DBUser
	if err := db.Where("email = ?", email).First(&row).Error; err != nil {
		t.Fatalf("Failed to load user %s: %v", email, err)
	}
	return &row
}

func randomSuffix() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000_000))
	if err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return n.String()
}
