package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	otpSvc      domain.OTPService
	dispatcher  domain.OTPDispatcher
	auditLog    domain.AuditLogger
}

// NewAuthService creates a new auth service. auditLog may be nil.
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	otpSvc domain.OTPService,
	dispatcher domain.OTPDispatcher,
	auditLog domain.AuditLogger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		otpSvc:      otpSvc,
		dispatcher:  dispatcher,
		auditLog:    auditLog,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByEmailOrUsername(ctx, email, username)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	challenge, err := s.otpSvc.Issue()
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		OTPCode:      &challenge.Code,
		OTPExpiresAt: &challenge.ExpiresAt,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).
		WithEmail(email).
		WithMetadata("username", username))

	// The row stays in place on a failed send; the user can ask for a resend.
	if err := s.dispatch(ctx, user, challenge.Code); err != nil {
		return nil, err
	}

	return user, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.audit(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).
				WithEmail(email).
				WithError(domain.ErrInvalidCredentials))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.audit(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).
			WithEmail(email).
			WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.issueChallenge(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyOTP implements domain.AuthService
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, email, code string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.otpSvc.Verify(user.OTPCode, code, user.OTPExpiresAt); err != nil {
		s.audit(ctx, domain.NewAuditEvent(domain.OTPFailureEvent, user.ID).
			WithEmail(email).
			WithError(err))
		return nil, err
	}

	if err := s.userRepo.ClearOTP(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to clear OTP: %w", err)
	}
	user.OTPCode = nil
	user.OTPExpiresAt = nil

	s.audit(ctx, domain.NewAuditEvent(domain.OTPVerifiedEvent, user.ID).WithEmail(email))
	s.audit(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithEmail(email))

	return user, nil
}

// ResendOTP implements domain.AuthService
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	return s.issueChallenge(ctx, user)
}

// issueChallenge overwrites the user's outstanding code and sends the new one
func (s *AuthServiceImpl) issueChallenge(ctx context.Context, user *domain.User) error {
	challenge, err := s.otpSvc.Issue()
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateOTP(ctx, user.ID, challenge.Code, challenge.ExpiresAt); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}
	user.OTPCode = &challenge.Code
	user.OTPExpiresAt = &challenge.ExpiresAt

	return s.dispatch(ctx, user, challenge.Code)
}

func (s *AuthServiceImpl) dispatch(ctx context.Context, user *domain.User, code string) error {
	if !s.dispatcher.SendOTP(ctx, user.Email, code, user.Username) {
		s.audit(ctx, domain.NewAuditEvent(domain.OTPDispatchFailureEvent, user.ID).
			WithEmail(user.Email).
			WithError(domain.ErrDispatchFailed))
		return domain.ErrDispatchFailed
	}

	s.audit(ctx, domain.NewAuditEvent(domain.OTPIssuedEvent, user.ID).WithEmail(user.Email))
	return nil
}

func (s *AuthServiceImpl) audit(ctx context.Context, event *domain.AuditEvent) {
	if s.auditLog == nil {
		return
	}
	event.WithClientContext(domain.ClientContextFrom(ctx))
	_ = s.auditLog.LogEvent(ctx, event)
}
