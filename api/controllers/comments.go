package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/plasma-social/plasma-backend/api/responses"
	"github.com/plasma-social/plasma-backend/api/validators"
	"github.com/plasma-social/plasma-backend/internal/comments"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
	"github.com/plasma-social/plasma-backend/pkg/logger"
)

type createCommentPayload struct {
	UserID   uuid.UUID  `json:"user_id" validate:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
	Body     string     `json:"body" validate:"required,min=1,max=2000"`
}

// CommentCreate posts a comment on a content item.
func CommentCreate(svc comments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "comment service unavailable"))
			return
		}

		contentID, err := uuidParam(r, "contentID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createCommentPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		created, err := svc.CreateComment(ctx, comments.CreateCommentInput{
			UserID:    payload.UserID,
			ContentID: contentID,
			ParentID:  payload.ParentID,
			Body:      payload.Body,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// CommentList returns the comment page for one content item.
func CommentList(svc comments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "comment service unavailable"))
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

// CommentDelete removes the actor's own comment.
func CommentDelete(svc comments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "comment service unavailable"))
			return
		}

		commentID, err := uuidParam(r, "commentID")
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

		if err := svc.DeleteComment(ctx, commentID, actorID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
