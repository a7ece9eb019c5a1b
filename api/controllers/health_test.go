package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/plasma-social/plasma-backend/pkg/config"
)

type testPinger struct {
	err error
}

func (p *testPinger) Ping(ctx context.Context) error {
	return p.err
}

func testConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "test"}}
}

func TestHealthLive(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	HealthLive(testConfig())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Plasma-Env"); got != "test" {
		t.Fatalf("unexpected env header %q", got)
	}
}

func TestHealthReadyReportsChecks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	HealthReady(testConfig(), testLogger(), &testPinger{}, &testPinger{})(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["database"] != "ok" {
		t.Fatal("expected database check")
	}
	if envelope.Data["redis"] != "ok" {
		t.Fatal("expected redis check")
	}
	if envelope.Data["status"] != "ready" {
		t.Fatal("expected ready status")
	}
}

func TestHealthReadyDatabaseDown(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	HealthReady(testConfig(), testLogger(), &testPinger{err: errors.New("connection refused")}, nil)(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestHealthReadySkipsNilRedis(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	HealthReady(testConfig(), testLogger(), &testPinger{}, nil)(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if _, ok := envelope.Data["redis"]; ok {
		t.Fatal("redis check should be skipped")
	}
}
