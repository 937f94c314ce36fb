package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAuthenticationErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
		description string
	}{
		{
			name:        "ErrUserNotFound",
			err:         ErrUserNotFound,
			expectedMsg: "user not found",
			description: "should indicate user lookup failure",
		},
		{
			name:        "ErrInvalidCredentials",
			err:         ErrInvalidCredentials,
			expectedMsg: "invalid credentials",
			description: "should not reveal which field failed",
		},
		{
			name:        "ErrUserAlreadyExists",
			err:         ErrUserAlreadyExists,
			expectedMsg: "user already exists",
			description: "should indicate duplicate email or username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDistinctSentinel(t, tt.err, tt.expectedMsg, tt.name, func() []namedErr {
				out := make([]namedErr, 0, len(tests))
				for _, o := range tests {
					out = append(out, namedErr{o.name, o.err})
				}
				return out
			}())
		})
	}
}

func TestOTPErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
		description string
	}{
		{
			name:        "ErrOTPMissing",
			err:         ErrOTPMissing,
			expectedMsg: "missing otp code",
			description: "stored or submitted code absent",
		},
		{
			name:        "ErrOTPInvalid",
			err:         ErrOTPInvalid,
			expectedMsg: "invalid otp code",
			description: "submitted code differs from stored code",
		},
		{
			name:        "ErrOTPExpired",
			err:         ErrOTPExpired,
			expectedMsg: "otp has expired",
			description: "challenge older than its expiry",
		},
		{
			name:        "ErrDispatchFailed",
			err:         ErrDispatchFailed,
			expectedMsg: "failed to send otp",
			description: "dispatcher reported a delivery failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			others := make([]namedErr, 0, len(tests))
			for _, o := range tests {
				others = append(others, namedErr{o.name, o.err})
			}
			assertDistinctSentinel(t, tt.err, tt.expectedMsg, tt.name, others)
		})
	}
}

func TestStoreUnavailable_Wrapping(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5432: connection refused")
	err := fmt.Errorf("%w: %w", ErrStoreUnavailable, cause)

	if !errors.Is(err, ErrStoreUnavailable) {
		t.Error("wrapped error should match ErrStoreUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should keep the driver cause")
	}
	if errors.Is(err, ErrUserNotFound) {
		t.Error("store failure must not look like a missing user")
	}
}

type namedErr struct {
	name string
	err  error
}

func assertDistinctSentinel(t *testing.T, err error, expectedMsg, name string, all []namedErr) {
	t.Helper()

	if err == nil {
		t.Fatal("error should not be nil")
	}
	if err.Error() != expectedMsg {
		t.Errorf("expected error message %q, got %q", expectedMsg, err.Error())
	}
	for _, other := range all {
		if other.name != name && errors.Is(err, other.err) {
			t.Errorf("error %s should not be equal to %s", name, other.name)
		}
	}
}
