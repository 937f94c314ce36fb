package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"github.com/Ishikapathar/Online-Exam-Management/internal/mocks"
)

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	otpSvc domain.OTPService,
	dispatcher domain.OTPDispatcher,
	auditLog domain.AuditLogger) domain.AuthService {
	t.Helper()

	// Use provided mocks or create defaults
	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if otpSvc == nil {
		otpSvc = mocks.NewMockOTPService()
	}
	if dispatcher == nil {
		dispatcher = mocks.NewMockOTPDispatcher()
	}

	return NewAuthService(userRepo, passwordSvc, otpSvc, dispatcher, auditLog)
}

// createValidUser creates a user with an outstanding challenge
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	code := mocks.MockOTPCode
	expires := time.Now().Add(5 * time.Minute)
	return &domain.User{
		ID:           1,
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "hashed_pw1",
		OTPCode:      &code,
		OTPExpiresAt: &expires,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// fakeClock is a manually advanced time source
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// userTable is a map-backed credential store wired into a MockUserRepository
type userTable struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*domain.User
}

// newInMemoryUserRepository returns a mock repository whose funcs operate on a
// shared in-memory table, so multi-step flows observe their own writes.
func newInMemoryUserRepository(t *testing.T) (*mocks.MockUserRepository, *userTable) {
	t.Helper()

	table := &userTable{nextID: 1, rows: make(map[uint]*domain.User)}
	repo := mocks.NewMockUserRepository()

	repo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		table.mu.Lock()
		defer table.mu.Unlock()
		for _, row := range table.rows {
			if strings.EqualFold(row.Email, user.Email) || row.Username == user.Username {
				return domain.ErrUserAlreadyExists
			}
		}
		user.ID = table.nextID
		table.nextID++
		table.rows[user.ID] = cloneUser(user)
		return nil
	}
	repo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		table.mu.Lock()
		defer table.mu.Unlock()
		for _, row := range table.rows {
			if row.Email == email {
				return cloneUser(row), nil
			}
		}
		return nil, domain.ErrUserNotFound
	}
	repo.FindByEmailOrUsernameFunc = func(ctx context.Context, email, username string) (*domain.User, error) {
		table.mu.Lock()
		defer table.mu.Unlock()
		for _, row := range table.rows {
			if row.Email == email || row.Username == username {
				return cloneUser(row), nil
			}
		}
		return nil, domain.ErrUserNotFound
	}
	repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		table.mu.Lock()
		defer table.mu.Unlock()
		if row, ok := table.rows[id]; ok {
			return cloneUser(row), nil
		}
		return nil, domain.ErrUserNotFound
	}
	repo.UpdateOTPFunc = func(ctx context.Context, userID uint, code string, expiresAt time.Time) error {
		table.mu.Lock()
		defer table.mu.Unlock()
		row, ok := table.rows[userID]
		if !ok {
			return domain.ErrUserNotFound
		}
		row.OTPCode = &code
		row.OTPExpiresAt = &expiresAt
		return nil
	}
	repo.ClearOTPFunc = func(ctx context.Context, userID uint) error {
		table.mu.Lock()
		defer table.mu.Unlock()
		row, ok := table.rows[userID]
		if !ok {
			return domain.ErrUserNotFound
		}
		row.OTPCode = nil
		row.OTPExpiresAt = nil
		return nil
	}

	return repo, table
}

// byEmail returns a copy of the stored row for email, or nil
func (u *userTable) byEmail(email string) *domain.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, row := range u.rows {
		if row.Email == email {
			return cloneUser(row)
		}
	}
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.OTPCode != nil {
		code := *u.OTPCode
		c.OTPCode = &code
	}
	if u.OTPExpiresAt != nil {
		exp := *u.OTPExpiresAt
		c.OTPExpiresAt = &exp
	}
	return &c
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }
