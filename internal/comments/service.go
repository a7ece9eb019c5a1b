package comments

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/internal/content"
	"github.com/plasma-social/plasma-backend/internal/users"
	"github.com/plasma-social/plasma-backend/pkg/db/models"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
)

// ServiceParams groups dependencies for the comment service.
type ServiceParams struct {
	CommentRepo *Repository
	ContentRepo *content.Repository
	UserRepo    *users.Repository
}

// Service exposes business rules for comment threads.
type Service interface {
	CreateComment(ctx context.Context, input CreateCommentInput) (CommentDTO, error)
	ListByContent(ctx context.Context, contentID uuid.UUID, cursor string, limit int) (CommentsPageDTO, error)
	DeleteComment(ctx context.Context, id, actorID uuid.UUID) error
}

type service struct {
	commentRepo *Repository
	contentRepo *content.Repository
	userRepo    *users.Repository
}

// NewService builds a comment service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CommentRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment repo is required")
	}
	if params.ContentRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{
		commentRepo: params.CommentRepo,
		contentRepo: params.ContentRepo,
		userRepo:    params.UserRepo,
	}, nil
}

// CreateComment validates the author, target and optional parent, then posts
// the comment. Replies must target a parent on the same content item.
func (s *service) CreateComment(ctx context.Context, input CreateCommentInput) (CommentDTO, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return CommentDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "comment body is required")
	}
	if input.UserID == uuid.Nil {
		return CommentDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ContentID == uuid.Nil {
		return CommentDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "content id is required")
	}

	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CommentDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return CommentDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if _, err := s.contentRepo.FindByID(ctx, input.ContentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CommentDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "content not found")
		}
		return CommentDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load content")
	}
	if input.ParentID != nil {
		parent, err := s.commentRepo.FindByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return CommentDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "parent comment not found")
			}
			return CommentDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent comment")
		}
		if parent.ContentID != input.ContentID {
			return CommentDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "parent comment belongs to different content")
		}
	}

	created, err := s.commentRepo.Create(ctx, &models.Comment{
		UserID:    input.UserID,
		ContentID: input.ContentID,
		ParentID:  input.ParentID,
		Body:      body,
	})
	if err != nil {
		return CommentDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create comment")
	}
	return toDTO(created), nil
}

// ListByContent returns the newest-first comment page with author summaries.
func (s *service) ListByContent(ctx context.Context, contentID uuid.UUID, cursor string, limit int) (CommentsPageDTO, error) {
	if contentID == uuid.Nil {
		return CommentsPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "content id is required")
	}
	records, nextCursor, err := s.commentRepo.ListByContent(ctx, contentID, cursor, limit)
	if err != nil {
		return CommentsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list comments")
	}
	items := make([]CommentWithAuthorDTO, 0, len(records))
	for i := range records {
		record := &records[i]
		items = append(items, CommentWithAuthorDTO{
			CommentDTO: toDTO(&record.Comment),
			Author: users.UserSummaryDTO{
				ID:          record.Comment.UserID,
				Username:    record.AuthorUsername,
				DisplayName: record.AuthorDisplayName,
				Avatar:      record.AuthorAvatar,
			},
		})
	}
	return CommentsPageDTO{Items: items, NextCursor: nextCursor}, nil
}

// DeleteComment removes the actor's own comment.
func (s *service) DeleteComment(ctx context.Context, id, actorID uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "comment id is required")
	}
	if actorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor id is required")
	}
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "comment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load comment")
	}
	if comment.UserID != actorID {
		return pkgerrors.New(pkgerrors.CodeValidation, "only the author can delete a comment")
	}
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete comment")
	}
	return nil
}
