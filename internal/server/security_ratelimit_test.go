package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(RateLimitPerWindow, RateLimitWindow)
	middleware := RateLimitMiddleware(nil, limiter)

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "192.168.1.100"
	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < RateLimitPerWindow; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d failed with status %d", i, rec.Code)
		}
	}

	// Next request should be blocked
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429 Too Many Requests, got %d", rec.Code)
	}

	limiter.mu.Lock()
	count := limiter.requestCountByIP[ip]
	limiter.mu.Unlock()

	if count != RateLimitPerWindow+1 {
		t.Errorf("expected count %d, got %d", RateLimitPerWindow+1, count)
	}

	// Another client is unaffected
	other := httptest.NewRequest("GET", "/test", nil)
	other.RemoteAddr = "192.168.1.101:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	if rec.Code != http.StatusOK {
		t.Errorf("expected other client to pass, got %d", rec.Code)
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)

	if !limiter.RecordRequest("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if limiter.RecordRequest("10.0.0.1") {
		t.Fatal("second request should be limited")
	}

	limiter.mu.Lock()
	limiter.lastResetTime = time.Now().Add(-2 * time.Minute)
	limiter.mu.Unlock()

	if !limiter.RecordRequest("10.0.0.1") {
		t.Error("request after the window should pass")
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		trusted   []string
		want      string
	}{
		{"direct", "203.0.113.9:5000", "", nil, "203.0.113.9"},
		{"untrusted forwarder ignored", "203.0.113.9:5000", "198.51.100.1", nil, "203.0.113.9"},
		{"trusted proxy uses rightmost hop", "10.0.0.1:5000", "198.51.100.1, 198.51.100.2", []string{"10.0.0.1"}, "198.51.100.2"},
		{"unparseable remote addr", "garbage", "", nil, "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			if got := extractIP(req, tt.trusted); got != tt.want {
				t.Errorf("extractIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
