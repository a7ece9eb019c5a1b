package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plasma-social/plasma-backend/api/responses"
	"github.com/plasma-social/plasma-backend/api/validators"
	"github.com/plasma-social/plasma-backend/internal/earnings"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
	"github.com/plasma-social/plasma-backend/pkg/logger"
)

type recordEarningPayload struct {
	Source      string     `json:"source" validate:"required"`
	Amount      string     `json:"amount" validate:"required"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	ContentID   *uuid.UUID `json:"content_id"`
}

// EarningRecord appends one monetary ledger entry for a user.
func EarningRecord(svc earnings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "earnings service unavailable"))
			return
		}

		userID, err := uuidParam(r, "userID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload recordEarningPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		recorded, err := svc.Record(ctx, earnings.RecordEarningInput{
			UserID:      userID,
			Source:      payload.Source,
			Amount:      payload.Amount,
			Description: payload.Description,
			ContentID:   payload.ContentID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, recorded)
	}
}

// EarningsSummary returns the rollup windows for one user. An optional asOf
// query anchors the windows at a fixed RFC3339 instant.
func EarningsSummary(svc earnings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "earnings service unavailable"))
			return
		}

		userID, err := uuidParam(r, "userID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var asOf time.Time
		if raw := strings.TrimSpace(r.URL.Query().Get("asOf")); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "asOf must be RFC3339"))
				return
			}
			asOf = parsed
		}

		summary, err := svc.Summarize(ctx, userID, asOf)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// EarningsList returns the newest-first ledger page for one user.
func EarningsList(svc earnings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "earnings service unavailable"))
			return
		}

		userID, err := uuidParam(r, "userID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := limitQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.ListByUser(ctx, userID, cursorQuery(r), limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
