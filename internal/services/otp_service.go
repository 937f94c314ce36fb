package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
)

// OTPServiceImpl implements domain.OTPService. Challenges live on the user row,
// so the service itself holds no state beyond its configuration and clock.
type OTPServiceImpl struct {
	config OTPConfig
	now    func() time.Time
}

type OTPConfig struct {
	Length int
	TTL    time.Duration
}

// DefaultOTPConfig is a six digit code valid for five minutes
var DefaultOTPConfig = OTPConfig{Length: 6, TTL: 5 * time.Minute}

// NewOTPService creates an OTP service backed by the wall clock
func NewOTPService(config OTPConfig) domain.OTPService {
	return NewOTPServiceWithClock(config, time.Now)
}

// NewOTPServiceWithClock creates an OTP service with an injected clock
func NewOTPServiceWithClock(config OTPConfig, now func() time.Time) domain.OTPService {
	if config.Length <= 0 {
		config.Length = DefaultOTPConfig.Length
	}
	if config.TTL <= 0 {
		config.TTL = DefaultOTPConfig.TTL
	}
	return &OTPServiceImpl{config: config, now: now}
}

// Issue implements domain.OTPService
func (s *OTPServiceImpl) Issue() (*domain.OTPChallenge, error) {
	code, err := GenerateCode(s.config.Length)
	if err != nil {
		return nil, err
	}
	return &domain.OTPChallenge{
		Code:      code,
		ExpiresAt: s.now().Add(s.config.TTL),
	}, nil
}

// Verify implements domain.OTPService
func (s *OTPServiceImpl) Verify(storedCode *string, submittedCode string, expiresAt *time.Time) error {
	return VerifyCode(storedCode, submittedCode, expiresAt, s.now())
}

// TTL implements domain.OTPService
func (s *OTPServiceImpl) TTL() time.Duration {
	return s.config.TTL
}

// GenerateCode returns a fixed-width decimal code drawn uniformly from
// [10^(length-1), 10^length - 1], so the first digit is never zero.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid otp length %d", length)
	}

	lower := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	upper := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	span := new(big.Int).Sub(upper, lower)

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP code: %w", err)
	}

	return n.Add(n, lower).String(), nil
}

// VerifyCode decides whether a submitted code satisfies the stored challenge.
// Missing is reported before mismatch, and mismatch before expiry.
func VerifyCode(storedCode *string, submittedCode string, expiresAt *time.Time, now time.Time) error {
	if storedCode == nil || *storedCode == "" || submittedCode == "" {
		return domain.ErrOTPMissing
	}

	if *storedCode != submittedCode {
		return domain.ErrOTPInvalid
	}

	if expiresAt == nil || now.After(*expiresAt) {
		return domain.ErrOTPExpired
	}

	return nil
}
