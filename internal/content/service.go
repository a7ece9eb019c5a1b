package content

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/internal/users"
	"github.com/plasma-social/plasma-backend/pkg/db"
	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/enums"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
	"github.com/plasma-social/plasma-backend/pkg/logger"
)

// ServiceParams groups dependencies for the content service.
type ServiceParams struct {
	ContentRepo *Repository
	UserRepo    *users.Repository
	DBClient    *db.Client
	Logger      *logger.Logger
}

// Service exposes business rules for publishing and browsing content.
type Service interface {
	CreateContent(ctx context.Context, input CreateContentInput) (ContentDTO, error)
	GetContent(ctx context.Context, id uuid.UUID) (ContentWithAuthorDTO, error)
	ListFeed(ctx context.Context, cursor string, limit int) (FeedPageDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) (ContentPageDTO, error)
	DeleteContent(ctx context.Context, id uuid.UUID) error
}

type service struct {
	contentRepo *Repository
	userRepo    *users.Repository
	dbClient    *db.Client
	logg        *logger.Logger
}

// NewService builds a content service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ContentRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.DBClient == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		contentRepo: params.ContentRepo,
		userRepo:    params.UserRepo,
		dbClient:    params.DBClient,
		logg:        params.Logger,
	}, nil
}

// CreateContent validates the author and publishes a new content item.
func (s *service) CreateContent(ctx context.Context, input CreateContentInput) (ContentDTO, error) {
	contentType, err := enums.ParseContentType(strings.TrimSpace(input.Type))
	if err != nil {
		return ContentDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid content type")
	}
	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContentDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return ContentDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	item := &models.Content{
		UserID:       input.UserID,
		Type:         contentType,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		FileURL:      input.FileURL,
		ThumbnailURL: input.ThumbnailURL,
		Duration:     input.Duration,
		IsPublished:  true,
		IsLive:       input.IsLive,
	}
	created, err := s.contentRepo.Create(ctx, item)
	if err != nil {
		return ContentDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create content")
	}
	return toDTO(created), nil
}

// GetContent loads one content item with its author summary.
func (s *service) GetContent(ctx context.Context, id uuid.UUID) (ContentWithAuthorDTO, error) {
	if id == uuid.Nil {
		return ContentWithAuthorDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "content id is required")
	}
	item, err := s.contentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContentWithAuthorDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "content not found")
		}
		return ContentWithAuthorDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load content")
	}
	author, err := s.userRepo.FindByID(ctx, item.UserID)
	if err != nil {
		return ContentWithAuthorDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load author")
	}
	return ContentWithAuthorDTO{
		ContentDTO: toDTO(item),
		Author:     users.ToSummary(author),
	}, nil
}

// ListFeed returns the newest-first published feed with author summaries.
func (s *service) ListFeed(ctx context.Context, cursor string, limit int) (FeedPageDTO, error) {
	records, nextCursor, err := s.contentRepo.ListFeed(ctx, cursor, limit)
	if err != nil {
		return FeedPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list feed")
	}
	items := make([]ContentWithAuthorDTO, 0, len(records))
	for i := range records {
		record := &records[i]
		items = append(items, ContentWithAuthorDTO{
			ContentDTO: toDTO(&record.Content),
			Author: users.UserSummaryDTO{
				ID:          record.Content.UserID,
				Username:    record.AuthorUsername,
				DisplayName: record.AuthorDisplayName,
				Avatar:      record.AuthorAvatar,
			},
		})
	}
	return FeedPageDTO{Items: items, NextCursor: nextCursor}, nil
}

// ListByUser returns one creator's content page.
func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) (ContentPageDTO, error) {
	if userID == uuid.Nil {
		return ContentPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, nextCursor, err := s.contentRepo.ListByUser(ctx, userID, cursor, limit)
	if err != nil {
		return ContentPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list content")
	}
	items := make([]ContentDTO, 0, len(rows))
	for i := range rows {
		items = append(items, toDTO(&rows[i]))
	}
	return ContentPageDTO{Items: items, NextCursor: nextCursor}, nil
}

// DeleteContent removes a content item plus its interactions and comments in
// one transaction. Earnings rows are never deleted; paid history outlives the
// content that generated it.
func (s *service) DeleteContent(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "content id is required")
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.contentRepo.WithTx(tx)
		if err := repo.DeleteInteractions(ctx, id); err != nil {
			return err
		}
		if err := repo.DeleteComments(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "content not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete content")
	}

	s.logg.Info(s.logg.WithContentID(ctx, id.String()), "content deleted")
	return nil
}
