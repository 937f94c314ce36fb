package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Ishikapathar/Online-Exam-Management/internal/app"
	"github.com/Ishikapathar/Online-Exam-Management/internal/config"
	"github.com/Ishikapathar/Online-Exam-Management/internal/infrastructure/database"
	"github.com/Ishikapathar/Online-Exam-Management/internal/mocks"
)

// TestServer runs the fully wired service over sqlite and miniredis
type TestServer struct {
	t          *testing.T
	Server     *httptest.Server
	Container  *app.Container
	Config     *config.Config
	DB         *gorm.DB
	Redis      *miniredis.Miniredis
	Dispatcher *mocks.MockOTPDispatcher
	Clock      *Clock
	Client     *http.Client
	metrics    *ServerMetrics
}

// ServerMetrics tracks request durations for E2E tests
type ServerMetrics struct {
	RequestDurations []time.Duration
	mu               sync.Mutex
}

// Clock is a manually advanced time source for the OTP service
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// NewTestServer creates and starts a test server instance
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:         "0",
		DBDriver:     "sqlite",
		DSN:          ":memory:",
		DBLogLevel:   "silent",
		RedisEnabled: true,
		UserCacheTTL: 5 * time.Minute,
		OTP_TTL:      5 * time.Minute,
		OTP_Length:   6,
		NotifyDriver: "log",
		AppName:      "Online Exam System",
		CORSOrigins:  []string{"http://localhost:3000"},
	}

	db, err := database.Open(cfg.DBDriver, cfg.DSN, cfg.DBLogLevel)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	dispatcher := mocks.NewMockOTPDispatcher()
	clock := &Clock{now: time.Now()}

	container, err := app.NewContainer(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), app.Deps{
		DB:         db,
		Redis:      redisClient,
		Dispatcher: dispatcher,
		Now:        clock.Now,
	})
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	ts := &TestServer{
		t:          t,
		Server:     httptest.NewServer(container.Router),
		Container:  container,
		Config:     cfg,
		DB:         db,
		Redis:      mr,
		Dispatcher: dispatcher,
		Clock:      clock,
		Client:     &http.Client{Timeout: 10 * time.Second},
		metrics:    &ServerMetrics{},
	}

	t.Cleanup(func() {
		ts.Server.Close()
		redisClient.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return ts
}

// URL returns the absolute URL for path
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// Do sends a JSON request and returns the status and decoded JSON object
func (ts *TestServer) Do(method, path string, body interface{}) (int, map[string]interface{}) {
	ts.t.Helper()

	var decoded map[string]interface{}
	status := ts.DoJSON(method, path, body, &decoded)
	return status, decoded
}

// DoJSON sends a JSON request and decodes the response into out when possible
func (ts *TestServer) DoJSON(method, path string, body, out interface{}) int {
	ts.t.Helper()

	resp := ts.DoRaw(method, path, body, nil)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		ts.t.Fatalf("Failed to read response: %v", err)
	}
	if len(raw) > 0 && out != nil {
		_ = json.Unmarshal(raw, out)
	}
	return resp.StatusCode
}

// DoRaw sends a request with optional extra headers and records its duration
func (ts *TestServer) DoRaw(method, path string, body interface{}, headers map[string]string) *http.Response {
	ts.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			ts.t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL(path), &buf)
	if err != nil {
		ts.t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := ts.Client.Do(req)
	ts.recordRequestDuration(time.Since(start))
	if err != nil {
		ts.t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	return resp
}

// LastCode returns the most recent code dispatched to email
func (ts *TestServer) LastCode(email string) string {
	ts.t.Helper()

	sent := ts.Dispatcher.Sent()
	for i := len(sent) - 1; i >= 0; i-- {
		if sent[i].To == email {
			return sent[i].Code
		}
	}
	ts.t.Fatalf("No code dispatched to %s", email)
	return ""
}

func (ts *TestServer) recordRequestDuration(duration time.Duration) {
	ts.metrics.mu.Lock()
	defer ts.metrics.mu.Unlock()
	ts.metrics.RequestDurations = append(ts.metrics.RequestDurations, duration)
}

// ServerMetricsReport summarises recorded request durations
type ServerMetricsReport struct {
	TotalRequests int
	AverageTime   time.Duration
	MaxTime       time.Duration
	P95Time       time.Duration
}

// GetMetrics returns performance metrics for the test server
func (ts *TestServer) GetMetrics() ServerMetricsReport {
	ts.metrics.mu.Lock()
	durations := make([]time.Duration, len(ts.metrics.RequestDurations))
	copy(durations, ts.metrics.RequestDurations)
	ts.metrics.mu.Unlock()

	if len(durations) == 0 {
		return ServerMetricsReport{}
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	var total time.Duration
	for _, d := range durations {
		total += d
	}
	p95 := int(float64(len(durations)) * 0.95)
	if p95 >= len(durations) {
		p95 = len(durations) - 1
	}

	return ServerMetricsReport{
		TotalRequests: len(durations),
		AverageTime:   total / time.Duration(len(durations)),
		MaxTime:       durations[len(durations)-1],
		P95Time:       durations[p95],
	}
}
