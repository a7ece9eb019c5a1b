package controllers

import (
	"net/http"

	"github.com/plasma-social/plasma-backend/api/responses"
	"github.com/plasma-social/plasma-backend/api/validators"
	"github.com/plasma-social/plasma-backend/internal/content"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
	"github.com/plasma-social/plasma-backend/pkg/logger"
)

// ContentCreate publishes a new content item.
func ContentCreate(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		var payload content.CreateContentInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := svc.CreateContent(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ContentGet returns one content item with its author summary.
func ContentGet(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		id, err := uuidParam(r, "contentID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.GetContent(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// ContentFeed returns the published feed page.
func ContentFeed(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		limit, err := limitQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.ListFeed(ctx, cursorQuery(r), limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// ContentListByUser returns one creator's content page.
func ContentListByUser(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
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

// ContentDelete removes a content item with its interactions and comments.
func ContentDelete(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
			return
		}

		id, err := uuidParam(r, "contentID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteContent(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
