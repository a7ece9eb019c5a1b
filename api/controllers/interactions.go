package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/plasma-social/plasma-backend/api/responses"
	"github.com/plasma-social/plasma-backend/api/validators"
	"github.com/plasma-social/plasma-backend/internal/interactions"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
	"github.com/plasma-social/plasma-backend/pkg/logger"
)

// InteractionRecord appends one energy action to the ledger.
func InteractionRecord(svc interactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "interaction service unavailable"))
			return
		}

		var payload interactions.RecordInteractionInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		recorded, err := svc.Record(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, recorded)
	}
}

// InteractionListByContent returns the ledger page for one content item.
func InteractionListByContent(svc interactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "interaction service unavailable"))
			return
		}

		contentID, err := uuidParam(r, "contentID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := limitQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.ListByContent(ctx, contentID, cursorQuery(r), limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// InteractionState reports which interaction types the actor has already
// spent on the content item.
func InteractionState(svc interactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "interaction service unavailable"))
			return
		}

		contentID, err := uuidParam(r, "contentID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		actorRaw := strings.TrimSpace(r.URL.Query().Get("actor_id"))
		if actorRaw == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "actor_id is required"))
			return
		}
		actorID, err := uuid.Parse(actorRaw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid actor_id"))
			return
		}

		state, err := svc.ActorState(ctx, actorID, contentID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}
