package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimiterStore struct {
	counts map[string]int64
	err    error
}

func newFakeLimiterStore() *fakeLimiterStore {
	return &fakeLimiterStore{counts: map[string]int64{}}
}

func (s *fakeLimiterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.counts[key]++
	return s.counts[key], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRateLimitPerIP(t *testing.T) {
	store := newFakeLimiterStore()
	policy := NewRateLimitPolicy("interactions", time.Minute, 2, 0)
	handler := RateLimit(policy, store, nil)(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/interactions", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/interactions", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")

	// A different IP still gets through.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/v1/interactions", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimitPerActor(t *testing.T) {
	store := newFakeLimiterStore()
	policy := NewRateLimitPolicy("interactions", time.Minute, 0, 1)
	handler := RateLimit(policy, store, nil)(okHandler())

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/interactions",
			strings.NewReader(`{"user_id":"actor-1","content_id":"c","type":"boost"}`))
		req.RemoteAddr = remoteAddr
		handler.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusNoContent, send("10.0.0.1:5000").Code)
	// Same actor from another IP is still throttled.
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.9:5000").Code)
}

func TestRateLimitBodyPreservedForNextHandler(t *testing.T) {
	store := newFakeLimiterStore()
	policy := NewRateLimitPolicy("interactions", time.Minute, 0, 10)

	var seenBody string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, 256)
		n, _ := r.Body.Read(b)
		seenBody = string(b[:n])
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimit(policy, store, nil)(inner)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/interactions", strings.NewReader(`{"user_id":"actor-2"}`))
	handler.ServeHTTP(rec, req)

	assert.Contains(t, seenBody, "actor-2")
}

func TestRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	handler := RateLimit(NewRateLimitPolicy("noop", 0, 0, 0), newFakeLimiterStore(), nil)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
