// SPDX-License-Identifier: MIT
package middleware

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func runLimited(limiter *RateLimiter, path, remoteAddr string, prefixes ...string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", path, nil)
	c.Request.RemoteAddr = remoteAddr

	RateLimitMiddleware(limiter, prefixes...)(c)
	return w
}

func TestRateLimitAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(5, time.Minute)
	defer limiter.Stop()

	w := runLimited(limiter, "/palettes/ocean/colors/Primary", "10.0.0.1:1234", "/palettes/")
	if w.Code == 429 {
		t.Error("Expected request to be allowed")
	}
	if w.Header().Get("X-RateLimit-Remaining") != "4" {
		t.Errorf("Expected 4 remaining, got %s", w.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimitExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()

	path := "/palettes/ocean/colors/Primary"
	clientIP := "10.0.0.1:1234"

	if w := runLimited(limiter, path, clientIP, "/palettes/"); w.Code == 429 {
		t.Error("First request should be allowed")
	}
	if w := runLimited(limiter, path, clientIP, "/palettes/"); w.Code == 429 {
		t.Error("Second request should be allowed")
	}

	w3 := runLimited(limiter, path, clientIP, "/palettes/")
	if w3.Code != 429 {
		t.Errorf("Third request should be rate limited, got %d", w3.Code)
	}
	if w3.Header().Get("X-RateLimit-Limit") != "2" {
		t.Errorf("Expected X-RateLimit-Limit: 2, got %s", w3.Header().Get("X-RateLimit-Limit"))
	}
	if w3.Header().Get("Retry-After") != "60" {
		t.Errorf("Expected Retry-After: 60, got %s", w3.Header().Get("Retry-After"))
	}

	// Another client has its own bucket.
	if w := runLimited(limiter, path, "10.0.0.2:1234", "/palettes/"); w.Code == 429 {
		t.Error("Other client should be allowed")
	}
}

func TestRateLimitDifferentPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		if w := runLimited(limiter, "/health", "10.0.0.1:1234", "/palettes/"); w.Code == 429 {
			t.Error("Unmatched path should not be rate limited")
		}
	}
}

func TestRateLimitNoPrefixesLimitsEverything(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	runLimited(limiter, "/health", "10.0.0.1:1234")
	if w := runLimited(limiter, "/anything", "10.0.0.1:1234"); w.Code != 429 {
		t.Errorf("Expected 429, got %d", w.Code)
	}
}

func TestRateLimitForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.RemoteAddr = "10.0.0.1:1234"
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if got := getClientIP(c); got != "203.0.113.9" {
		t.Errorf("Expected forwarded client, got %s", got)
	}
}

func TestRateLimitRefill(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	if ok, _ := limiter.Allow("a"); !ok {
		t.Fatal("first request should pass")
	}
	if ok, _ := limiter.Allow("a"); ok {
		t.Fatal("second request should be limited")
	}

	now = now.Add(61 * time.Second)
	if ok, _ := limiter.Allow("a"); !ok {
		t.Fatal("bucket should refill after the interval")
	}
}

func TestRateLimitPrune(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	limiter.Allow("idle")

	now = now.Add(11 * time.Minute)
	limiter.Allow("busy")
	limiter.prune(10 * time.Minute)

	limiter.mu.RLock()
	defer limiter.mu.RUnlock()
	if _, ok := limiter.buckets["idle"]; ok {
		t.Error("idle bucket should be pruned")
	}
	if _, ok := limiter.buckets["busy"]; !ok {
		t.Error("busy bucket should be kept")
	}
}

func TestRateLimitConcurrentClients(t *testing.T) {
	limiter := NewRateLimiter(100, time.Minute)
	defer limiter.Stop()

	var wg sync.WaitGroup
	allowed := make(chan bool, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := limiter.Allow("shared")
			allowed <- ok
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	if count != 100 {
		t.Errorf("Expected exactly 100 allowed requests, got %d", count)
	}
}
