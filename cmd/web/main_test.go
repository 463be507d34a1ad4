package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"sample-dashboard/internal/config"
	"sample-dashboard/internal/models"
	"sample-dashboard/internal/observability"
	"sample-dashboard/internal/services"
)

var testNow = time.Date(2024, time.January, 15, 14, 30, 45, 123_000_000, time.UTC)

func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "localhost",
			Port:            8084,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		Logger: config.LoggerConfig{Level: "error", Format: "text"},
		Security: config.SecurityConfig{
			EnableRateLimit: true,
			RateLimitRPS:    1000,
			RateLimitBurst:  1000,
			AllowedOrigins:  []string{"http://localhost:8084"},
			TrustedProxies:  []string{"127.0.0.1"},
		},
		Dashboard: config.DashboardConfig{
			LiveInterval: time.Second,
		},
	}
}

func newTestHandler(t *testing.T, cfg *config.Config) (http.Handler, *observability.Collector) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	collector := observability.NewCollector()
	dashboard := services.NewDashboard(func() time.Time { return testNow })
	return newHandler(cfg, dashboard, collector, logger), collector
}

// Integration tests for HTTP routes
func TestServer_Routes(t *testing.T) {
	handler, _ := newTestHandler(t, newTestConfig())

	tests := []struct {
		path           string
		expectedStatus int
		contentType    string
	}{
		{"/", http.StatusOK, "text/html"},
		{"/api/metrics", http.StatusOK, "application/json"},
		{"/api/metrics?period=90d", http.StatusOK, "application/json"},
		{"/api/transactions", http.StatusOK, "application/json"},
		{"/api/transactions?status=pending", http.StatusOK, "application/json"},
		{"/api/summary", http.StatusOK, "application/json"},
		{"/health", http.StatusOK, "application/json"},
		{"/admin/stats", http.StatusOK, "application/json"},
		{"/metrics", http.StatusOK, "text/plain"},
		{"/sse/metrics", http.StatusOK, "text/event-stream"},
		{"/sse/transactions", http.StatusOK, "text/event-stream"},
		{"/sse/summary", http.StatusOK, "text/event-stream"},
		{"/sse/refresh-all", http.StatusOK, "text/event-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", tt.path, nil)

			handler.ServeHTTP(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			ct := w.Header().Get("Content-Type")
			if !strings.Contains(ct, tt.contentType) {
				t.Errorf("content-type = %q, want %q", ct, tt.contentType)
			}

			if tt.contentType == "application/json" {
				var result any
				if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
					t.Errorf("invalid json: %v", err)
				}
			}

			if w.Header().Get("X-Request-ID") == "" {
				t.Error("expected X-Request-ID header")
			}
		})
	}
}

func TestServer_NotFound(t *testing.T) {
	handler, _ := newTestHandler(t, newTestConfig())

	for _, path := range []string{"/api/unknown", "/index.html"} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", path, nil))

		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want %d", path, w.Code, http.StatusNotFound)
		}
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	handler, _ := newTestHandler(t, newTestConfig())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/api/metrics", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestServer_Preflight(t *testing.T) {
	handler, _ := newTestHandler(t, newTestConfig())

	w := httptest.NewRecorder()
	r := httptest.NewRequest("OPTIONS", "/api/metrics", nil)
	r.Header.Set("Origin", "http://localhost:8084")
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:8084" {
		t.Errorf("allow-origin = %q", got)
	}
}

// Test JSON API responses
func TestServer_JSONResponse(t *testing.T) {
	handler, _ := newTestHandler(t, newTestConfig())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/transactions?period=7d", nil))

	var response models.TransactionsResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}

	if response.Total != 21 {
		t.Fatalf("total = %d, want 21", response.Total)
	}

	first := response.Transactions[0]
	if !strings.HasPrefix(first.ID, "txn-") || len(first.ID) != len("txn-000000") {
		t.Errorf("unexpected id %q", first.ID)
	}
	if !strings.HasSuffix(first.CustomerEmail, "@email.com") {
		t.Errorf("unexpected email %q", first.CustomerEmail)
	}
	if first.Amount <= 0 && first.Status != models.StatusRefunded {
		t.Errorf("non-refund transaction %s has amount %v", first.ID, first.Amount)
	}
}

func TestServer_RepeatableResponses(t *testing.T) {
	handler, _ := newTestHandler(t, newTestConfig())

	get := func() string {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/metrics?period=30d", nil))
		body, _ := io.ReadAll(w.Body)
		return string(body)
	}

	if first, second := get(), get(); first != second {
		t.Error("identical requests at the same instant should produce identical bodies")
	}
}

func TestServer_RateLimit(t *testing.T) {
	cfg := newTestConfig()
	cfg.Security.RateLimitRPS = 1
	cfg.Security.RateLimitBurst = 1
	handler, _ := newTestHandler(t, cfg)

	codes := make([]int, 0, 2)
	for range 2 {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
}

func TestServer_MetricsEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t, newTestConfig())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/transactions?period=7d", nil))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	body := w.Body.String()

	for _, want := range []string{
		`sample_dashboard_http_requests_total{method="GET",route="GET /api/transactions",status="200"} 1`,
		`sample_dashboard_synth_records_generated_total{kind="transactions",period="7d"} 21`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
