package domain

import (
	"context"
	"time"
)

// UserRepository defines credential store operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	// UpdateOTP replaces the outstanding challenge; code and expiry are written together
	UpdateOTP(ctx context.Context, userID uint, code string, expiresAt time.Time) error
	// ClearOTP sets both otp columns to null
	ClearOTP(ctx context.Context, userID uint) error
}

// AuthService defines the OTP-gated authentication flow
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	VerifyOTP(ctx context.Context, email, code string) (*User, error)
	ResendOTP(ctx context.Context, email string) error
}

// OTPService issues and checks verification challenges
type OTPService interface {
	Issue() (*OTPChallenge, error)
	Verify(storedCode *string, submittedCode string, expiresAt *time.Time) error
	TTL() time.Duration
}

// OTPDispatcher delivers a verification code to the user's address.
// Delivery failures are reported through the boolean, never as a panic.
type OTPDispatcher interface {
	SendOTP(ctx context.Context, to, code, displayName string) bool
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// StudentRepository defines student data access operations
type StudentRepository interface {
	List(ctx context.Context, orderBy, order string) ([]Student, error)
	FindByID(ctx context.Context, id uint) (*Student, error)
	Create(ctx context.Context, student *Student) error
	Update(ctx context.Context, student *Student) error
	Delete(ctx context.Context, id uint) error
	Performance(ctx context.Context, id uint) (*StudentPerformance, error)
}

// SubjectRepository defines subject data access operations
type SubjectRepository interface {
	List(ctx context.Context) ([]Subject, error)
	FindByID(ctx context.Context, id uint) (*Subject, error)
	Create(ctx context.Context, subject *Subject) error
	Update(ctx context.Context, subject *Subject) error
	Delete(ctx context.Context, id uint) error
}

// ExamRepository defines exam data access operations
type ExamRepository interface {
	List(ctx context.Context) ([]Exam, error)
	FindByID(ctx context.Context, id uint) (*Exam, error)
	Create(ctx context.Context, exam *Exam) error
	Update(ctx context.Context, exam *Exam) error
	Delete(ctx context.Context, id uint) error
}

// ResultRepository defines exam result data access operations
type ResultRepository interface {
	List(ctx context.Context, orderBy, order string) ([]ResultView, error)
	ListByStudent(ctx context.Context, studentID uint) ([]ResultView, error)
	ListByExam(ctx context.Context, examID uint) ([]ResultView, error)
	Rankings(ctx context.Context, limit int) ([]Ranking, error)
	Create(ctx context.Context, result *Result) error
	UpdateMarks(ctx context.Context, id uint, marks float64) error
	Delete(ctx context.Context, id uint) error
}

// AnalyticsRepository computes aggregate statistics in the database
type AnalyticsRepository interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	SubjectPerformance(ctx context.Context) ([]SubjectPerformance, error)
	TrendingStudents(ctx context.Context, limit int) ([]TrendingStudent, error)
}
