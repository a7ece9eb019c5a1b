package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plasma-social/plasma-backend/internal/earnings"
	"github.com/plasma-social/plasma-backend/pkg/enums"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
)

type testEarningsService struct {
	recordFn    func(ctx context.Context, input earnings.RecordEarningInput) (earnings.EarningDTO, error)
	summarizeFn func(ctx context.Context, userID uuid.UUID, asOf time.Time) (earnings.SummaryDTO, error)
	listFn      func(ctx context.Context, userID uuid.UUID, cursor string, limit int) (earnings.EarningsPageDTO, error)
}

func (s *testEarningsService) Record(ctx context.Context, input earnings.RecordEarningInput) (earnings.EarningDTO, error) {
	if s.recordFn != nil {
		return s.recordFn(ctx, input)
	}
	return earnings.EarningDTO{}, nil
}

func (s *testEarningsService) Summarize(ctx context.Context, userID uuid.UUID, asOf time.Time) (earnings.SummaryDTO, error) {
	if s.summarizeFn != nil {
		return s.summarizeFn(ctx, userID, asOf)
	}
	return earnings.SummaryDTO{}, nil
}

func (s *testEarningsService) ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) (earnings.EarningsPageDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID, cursor, limit)
	}
	return earnings.EarningsPageDTO{}, nil
}

func TestRecordEarningCreated(t *testing.T) {
	userID := uuid.New()
	svc := &testEarningsService{
		recordFn: func(ctx context.Context, input earnings.RecordEarningInput) (earnings.EarningDTO, error) {
			if input.UserID != userID {
				t.Fatalf("unexpected user %s", input.UserID)
			}
			if input.Source != "tips" {
				t.Fatalf("unexpected source %q", input.Source)
			}
			if input.Amount != "12.50" {
				t.Fatalf("unexpected amount %q", input.Amount)
			}
			return earnings.EarningDTO{
				ID:     uuid.New(),
				UserID: input.UserID,
				Source: enums.EarningSourceTips,
				Amount: decimal.RequireFromString("12.50"),
			}, nil
		},
	}

	body := `{"source":"tips","amount":"12.50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/"+userID.String()+"/earnings", strings.NewReader(body))
	req = addRouteParam(req, "userID", userID.String())
	resp := httptest.NewRecorder()
	EarningRecord(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	var envelope struct {
		Data earnings.EarningDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !envelope.Data.Amount.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("unexpected amount %s", envelope.Data.Amount)
	}
}

func TestRecordEarningInvalidUserParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/not-a-uuid/earnings", strings.NewReader(`{"source":"tips","amount":"1.00"}`))
	req = addRouteParam(req, "userID", "not-a-uuid")
	resp := httptest.NewRecorder()
	EarningRecord(&testEarningsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRecordEarningValidationError(t *testing.T) {
	svc := &testEarningsService{
		recordFn: func(ctx context.Context, input earnings.RecordEarningInput) (earnings.EarningDTO, error) {
			return earnings.EarningDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown earning source")
		},
	}

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/"+userID.String()+"/earnings", strings.NewReader(`{"source":"lottery","amount":"1.00"}`))
	req = addRouteParam(req, "userID", userID.String())
	resp := httptest.NewRecorder()
	EarningRecord(svc, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestEarningsSummaryParsesAsOf(t *testing.T) {
	userID := uuid.New()
	anchor := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := &testEarningsService{
		summarizeFn: func(ctx context.Context, uid uuid.UUID, asOf time.Time) (earnings.SummaryDTO, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			if !asOf.Equal(anchor) {
				t.Fatalf("unexpected asOf %s", asOf)
			}
			return earnings.SummaryDTO{
				UserID:    uid,
				Total:     decimal.RequireFromString("117.50"),
				Today:     decimal.RequireFromString("10.00"),
				ThisWeek:  decimal.RequireFromString("15.00"),
				ThisMonth: decimal.RequireFromString("17.50"),
				AsOf:      asOf,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String()+"/earnings/summary?asOf=2026-01-15T12:00:00Z", nil)
	req = addRouteParam(req, "userID", userID.String())
	resp := httptest.NewRecorder()
	EarningsSummary(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data earnings.SummaryDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !envelope.Data.Total.Equal(decimal.RequireFromString("117.50")) {
		t.Fatalf("unexpected total %s", envelope.Data.Total)
	}
	if !envelope.Data.ThisWeek.Equal(decimal.RequireFromString("15.00")) {
		t.Fatalf("unexpected week %s", envelope.Data.ThisWeek)
	}
}

func TestEarningsSummaryDefaultsAsOf(t *testing.T) {
	userID := uuid.New()
	svc := &testEarningsService{
		summarizeFn: func(ctx context.Context, uid uuid.UUID, asOf time.Time) (earnings.SummaryDTO, error) {
			if !asOf.IsZero() {
				t.Fatalf("expected zero asOf got %s", asOf)
			}
			return earnings.SummaryDTO{UserID: uid}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String()+"/earnings/summary", nil)
	req = addRouteParam(req, "userID", userID.String())
	resp := httptest.NewRecorder()
	EarningsSummary(svc, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestEarningsSummaryRejectsBadAsOf(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String()+"/earnings/summary?asOf=yesterday", nil)
	req = addRouteParam(req, "userID", userID.String())
	resp := httptest.NewRecorder()
	EarningsSummary(&testEarningsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestEarningsListPassesCursor(t *testing.T) {
	userID := uuid.New()
	svc := &testEarningsService{
		listFn: func(ctx context.Context, uid uuid.UUID, cursor string, limit int) (earnings.EarningsPageDTO, error) {
			if cursor != "abc123" {
				t.Fatalf("unexpected cursor %q", cursor)
			}
			if limit != 10 {
				t.Fatalf("unexpected limit %d", limit)
			}
			return earnings.EarningsPageDTO{Items: []earnings.EarningDTO{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String()+"/earnings?cursor=abc123&limit=10", nil)
	req = addRouteParam(req, "userID", userID.String())
	resp := httptest.NewRecorder()
	EarningsList(svc, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
