package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// OTP errors
var (
	ErrOTPMissing     = errors.New("missing otp code")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPExpired     = errors.New("otp has expired")
	ErrDispatchFailed = errors.New("failed to send otp")
)

// Record errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrResourceConflict = errors.New("resource already exists")
	ErrInvalidReference = errors.New("referenced resource does not exist")
)

// Infrastructure errors
var (
	ErrStoreUnavailable = errors.New("store unavailable")
)
