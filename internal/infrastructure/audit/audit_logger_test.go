package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/Ishikapathar/Online-Exam-Management/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSlogAuditLogger_Success(t *testing.T) {
	var buf bytes.Buffer
	logger := NewAuditLogger(newBufferedLogger(&buf))

	event := domain.NewAuditEvent(domain.UserRegistrationEvent, 7).
		WithEmail("a@x.com").
		WithMetadata("username", "alice").
		WithClientContext(&domain.ClientContext{IPAddress: "10.0.0.1", RequestID: "req-1"})

	require.NoError(t, logger.LogEvent(context.Background(), event))

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "audit", record["component"])
	assert.Equal(t, "USER_REGISTERED", record["event_type"])
	assert.Equal(t, float64(7), record["user_id"])
	assert.Equal(t, "a@x.com", record["email"])
	assert.Equal(t, "10.0.0.1", record["ip_address"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, map[string]interface{}{"username": "alice"}, record["metadata"])
	assert.NotContains(t, record, "error")
}

func TestSlogAuditLogger_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := NewAuditLogger(newBufferedLogger(&buf))

	event := domain.NewAuditEvent(domain.OTPFailureEvent, 7).
		WithEmail("a@x.com").
		WithError(errors.New("otp has expired"))

	require.NoError(t, logger.LogEvent(context.Background(), event))

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, false, record["success"])
	assert.Equal(t, "otp has expired", record["error"])
	assert.NotContains(t, record, "metadata")
}
