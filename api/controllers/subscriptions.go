package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/plasma-social/plasma-backend/api/responses"
	"github.com/plasma-social/plasma-backend/api/validators"
	"github.com/plasma-social/plasma-backend/internal/subscriptions"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
	"github.com/plasma-social/plasma-backend/pkg/logger"
)

// SubscriptionCreate starts a subscription from one user to a creator.
func SubscriptionCreate(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		var payload subscriptions.SubscribeInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := svc.Subscribe(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// SubscriptionCancel deactivates the actor's subscription.
func SubscriptionCancel(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		subscriptionID, err := uuidParam(r, "subscriptionID")
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

		if err := svc.Cancel(ctx, subscriptionID, actorID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "canceled"})
	}
}

// SubscriptionListForSubscriber returns the subscriptions one user pays for.
func SubscriptionListForSubscriber(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
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

		page, err := svc.ListForSubscriber(ctx, userID, cursorQuery(r), limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// SubscriptionListForCreator returns the active subscribers of one creator.
func SubscriptionListForCreator(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
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

		page, err := svc.ListForCreator(ctx, userID, cursorQuery(r), limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
