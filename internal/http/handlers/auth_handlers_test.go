package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"github.com/Ishikapathar/Online-Exam-Management/internal/mocks"
	"github.com/gin-gonic/gin"
)

func setupAuthRouter(authSvc domain.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandlers(authSvc)
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/verify-otp", h.VerifyOTP)
	r.POST("/api/auth/resend-otp", h.ResendOTP)
	return r
}

func performJSON(r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:        "successful registration",
			requestBody: RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw1"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, username, email, password string) (*domain.User, error) {
					return &domain.User{ID: 42, Username: username, Email: email}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			expectedBody: map[string]interface{}{
				"message":     "Registration successful. Please verify the code sent to your email.",
				"requiresOTP": true,
				"email":       "a@x.com",
				"tempUserId":  float64(42),
			},
		},
		{
			name:           "missing username",
			requestBody:    map[string]string{"email": "a@x.com", "password": "pw1"},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "username is required"},
		},
		{
			name:           "malformed email",
			requestBody:    RegisterRequest{Username: "alice", Email: "not-an-email", Password: "pw1"},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "email must be a valid email address"},
		},
		{
			name:           "password longer than 72 bytes",
			requestBody:    RegisterRequest{Username: "alice", Email: "a@x.com", Password: strings.Repeat("é", 37)},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "password must be at most 72 bytes"},
		},
		{
			name:           "invalid json",
			requestBody:    `{"username":`,
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Invalid request body"},
		},
		{
			name:        "user already exists",
			requestBody: RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw1"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, username, email, password string) (*domain.User, error) {
					return nil, domain.ErrUserAlreadyExists
				}
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   map[string]interface{}{"error": "User already exists"},
		},
		{
			name:        "dispatch failure",
			requestBody: RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw1"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, username, email, password string) (*domain.User, error) {
					return nil, domain.ErrDispatchFailed
				}
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   map[string]interface{}{"error": "Failed to send verification code. Please try again."},
		},
		{
			name:        "store unavailable",
			requestBody: RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw1"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, username, email, password string) (*domain.User, error) {
					return nil, fmt.Errorf("failed to create user: %w", domain.ErrStoreUnavailable)
				}
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   map[string]interface{}{"error": "Service temporarily unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)

			w, body := performJSON(setupAuthRouter(authSvc), http.MethodPost, "/api/auth/register", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			assertBody(t, tt.expectedBody, body)
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:        "successful login sends a code",
			requestBody: LoginRequest{Email: "a@x.com", Password: "pw1"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.User, error) {
					return &domain.User{ID: 1, Username: "alice", Email: email}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"message":     "Verification code sent to your email",
				"requiresOTP": true,
				"email":       "a@x.com",
				"username":    "alice",
			},
		},
		{
			name:        "invalid credentials",
			requestBody: LoginRequest{Email: "a@x.com", Password: "wrong"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.User, error) {
					return nil, domain.ErrInvalidCredentials
				}
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   map[string]interface{}{"error": "Invalid email or password"},
		},
		{
			name:           "missing password",
			requestBody:    map[string]string{"email": "a@x.com"},
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "password is required"},
		},
		{
			name:        "unexpected error",
			requestBody: LoginRequest{Email: "a@x.com", Password: "pw1"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.User, error) {
					return nil, fmt.Errorf("failed to hash password: boom")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"error": "Internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)

			w, body := performJSON(setupAuthRouter(authSvc), http.MethodPost, "/api/auth/login", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			assertBody(t, tt.expectedBody, body)
		})
	}
}

func TestAuthHandlers_VerifyOTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		verifyErr      error
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "valid code",
			requestBody:    VerifyOTPRequest{Email: "a@x.com", OTP: mocks.MockOTPCode},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"id":           float64(1),
				"username":     "alice",
				"email":        "a@x.com",
				"message":      "Login successful",
				"loginSuccess": true,
			},
		},
		{
			name:           "missing otp field",
			requestBody:    map[string]string{"email": "a@x.com"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "otp is required"},
		},
		{
			name:           "wrong code",
			requestBody:    VerifyOTPRequest{Email: "a@x.com", OTP: "000000"},
			verifyErr:      domain.ErrOTPInvalid,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "Invalid OTP code"},
		},
		{
			name:           "expired code",
			requestBody:    VerifyOTPRequest{Email: "a@x.com", OTP: mocks.MockOTPCode},
			verifyErr:      domain.ErrOTPExpired,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "OTP has expired. Please request a new one."},
		},
		{
			name:           "no pending code",
			requestBody:    VerifyOTPRequest{Email: "a@x.com", OTP: mocks.MockOTPCode},
			verifyErr:      domain.ErrOTPMissing,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "No verification code pending. Please request a new one."},
		},
		{
			name:           "unknown email",
			requestBody:    VerifyOTPRequest{Email: "ghost@x.com", OTP: mocks.MockOTPCode},
			verifyErr:      domain.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   map[string]interface{}{"error": "User not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.VerifyOTPFunc = func(ctx context.Context, email, code string) (*domain.User, error) {
				if tt.verifyErr != nil {
					return nil, tt.verifyErr
				}
				return &domain.User{ID: 1, Username: "alice", Email: email}, nil
			}

			w, body := performJSON(setupAuthRouter(authSvc), http.MethodPost, "/api/auth/verify-otp", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			assertBody(t, tt.expectedBody, body)
		})
	}
}

func TestAuthHandlers_ResendOTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		resendErr      error
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "code resent",
			requestBody:    ResendOTPRequest{Email: "a@x.com"},
			expectedStatus: http.StatusOK,
			expectedBody:   map[string]interface{}{"message": "A new verification code has been sent to your email"},
		},
		{
			name:           "unknown email",
			requestBody:    ResendOTPRequest{Email: "ghost@x.com"},
			resendErr:      domain.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   map[string]interface{}{"error": "User not found"},
		},
		{
			name:           "dispatch failure",
			requestBody:    ResendOTPRequest{Email: "a@x.com"},
			resendErr:      domain.ErrDispatchFailed,
			expectedStatus: http.StatusBadGateway,
			expectedBody:   map[string]interface{}{"error": "Failed to send verification code. Please try again."},
		},
		{
			name:           "missing email",
			requestBody:    map[string]string{},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "email is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calledWith string
			authSvc := mocks.NewMockAuthService()
			authSvc.ResendOTPFunc = func(ctx context.Context, email string) error {
				calledWith = email
				return tt.resendErr
			}

			w, body := performJSON(setupAuthRouter(authSvc), http.MethodPost, "/api/auth/resend-otp", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			assertBody(t, tt.expectedBody, body)
			if w.Code == http.StatusBadRequest && calledWith != "" {
				t.Errorf("service should not be called on validation failure, got %q", calledWith)
			}
		})
	}
}

func TestJSONFieldName(t *testing.T) {
	tests := map[string]string{
		"Username":           "username",
		"OTP":                "otp",
		"StudentID":          "student_id",
		"RegistrationNumber": "registration_number",
		"MarksObtained":      "marks_obtained",
	}
	for in, want := range tests {
		if got := jsonFieldName(in); got != want {
			t.Errorf("jsonFieldName(%q) = %q, want %q", in, got, want)
		}
	}
}

func assertBody(t *testing.T, expected, actual map[string]interface{}) {
	t.Helper()
	for key, want := range expected {
		if got, ok := actual[key]; !ok || got != want {
			t.Errorf("expected %s=%v, got %v", key, want, got)
		}
	}
	if len(actual) != len(expected) {
		t.Errorf("expected %d keys, got %d: %v", len(expected), len(actual), actual)
	}
}
