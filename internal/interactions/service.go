package interactions

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/internal/content"
	"github.com/plasma-social/plasma-backend/internal/users"
	"github.com/plasma-social/plasma-backend/pkg/db"
	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/enums"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
	"github.com/plasma-social/plasma-backend/pkg/logger"
	"github.com/plasma-social/plasma-backend/pkg/metrics"
)

// ServiceParams groups dependencies for the interaction ledger service.
type ServiceParams struct {
	InteractionRepo *Repository
	ContentRepo     *content.Repository
	UserRepo        *users.Repository
	DBClient        *db.Client
	Logger          *logger.Logger
	Metrics         *metrics.InteractionMetrics
}

// Service exposes the interaction ledger. Record is the single write path;
// every accepted write moves exactly one content counter by one.
type Service interface {
	Record(ctx context.Context, input RecordInteractionInput) (InteractionDTO, error)
	ListByContent(ctx context.Context, contentID uuid.UUID, cursor string, limit int) (InteractionsPageDTO, error)
	ActorState(ctx context.Context, userID, contentID uuid.UUID) (ActorStateDTO, error)
	HasInteracted(ctx context.Context, userID, contentID uuid.UUID, interactionType string) (bool, error)
}

type service struct {
	interactionRepo *Repository
	contentRepo     *content.Repository
	userRepo        *users.Repository
	dbClient        *db.Client
	logg            *logger.Logger
	metrics         *metrics.InteractionMetrics
}

// NewService builds an interaction service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.InteractionRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "interaction repo is required")
	}
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
		interactionRepo: params.InteractionRepo,
		contentRepo:     params.ContentRepo,
		userRepo:        params.UserRepo,
		dbClient:        params.DBClient,
		logg:            params.Logger,
		metrics:         params.Metrics,
	}, nil
}

// Record appends one ledger row and bumps the matching content counter inside
// a single transaction. A duplicate (user, content, type) tuple rolls the
// whole write back and surfaces as a conflict.
func (s *service) Record(ctx context.Context, input RecordInteractionInput) (InteractionDTO, error) {
	interactionType, err := enums.ParseInteractionType(strings.TrimSpace(input.Type))
	if err != nil {
		return InteractionDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid interaction type")
	}
	if input.UserID == uuid.Nil {
		return InteractionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ContentID == uuid.Nil {
		return InteractionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "content id is required")
	}
	if input.EnergyValue < 0 {
		return InteractionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "energy value must be at least 1")
	}

	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InteractionDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return InteractionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if _, err := s.contentRepo.FindByID(ctx, input.ContentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InteractionDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "content not found")
		}
		return InteractionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load content")
	}

	var recorded *models.Interaction
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.interactionRepo.WithTx(tx)

		row, err := repo.Insert(ctx, &models.Interaction{
			UserID:      input.UserID,
			ContentID:   input.ContentID,
			Type:        interactionType,
			EnergyValue: input.EnergyValue,
		})
		if err != nil {
			return err
		}
		if err := repo.IncrementCounter(ctx, input.ContentID, interactionType); err != nil {
			return err
		}
		recorded = row
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, models.UniqueInteractionConstraint) {
			s.metrics.IncDuplicate(interactionType.String())
			return InteractionDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "already interacted with this content")
		}
		return InteractionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record interaction")
	}

	s.metrics.IncRecorded(interactionType.String())
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"user_id":          input.UserID.String(),
		"content_id":       input.ContentID.String(),
		"interaction_type": interactionType.String(),
	})
	s.logg.Info(logCtx, "interaction recorded")

	return toDTO(recorded), nil
}

// ListByContent returns the newest-first interaction page for one content item.
func (s *service) ListByContent(ctx context.Context, contentID uuid.UUID, cursor string, limit int) (InteractionsPageDTO, error) {
	if contentID == uuid.Nil {
		return InteractionsPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "content id is required")
	}
	rows, nextCursor, err := s.interactionRepo.ListByContent(ctx, contentID, cursor, limit)
	if err != nil {
		return InteractionsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list interactions")
	}
	items := make([]InteractionDTO, 0, len(rows))
	for i := range rows {
		items = append(items, toDTO(&rows[i]))
	}
	return InteractionsPageDTO{Items: items, NextCursor: nextCursor}, nil
}

// HasInteracted reports whether the actor already holds the given interaction
// type against the content item.
func (s *service) HasInteracted(ctx context.Context, userID, contentID uuid.UUID, interactionType string) (bool, error) {
	if userID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if contentID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "content id is required")
	}
	parsed, err := enums.ParseInteractionType(strings.TrimSpace(interactionType))
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse interaction type")
	}
	exists, err := s.interactionRepo.HasInteracted(ctx, userID, contentID, parsed)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check interaction")
	}
	return exists, nil
}

// ActorState reports which interaction types the actor has already spent on
// the content item, so clients can disable the matching controls.
func (s *service) ActorState(ctx context.Context, userID, contentID uuid.UUID) (ActorStateDTO, error) {
	if userID == uuid.Nil {
		return ActorStateDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if contentID == uuid.Nil {
		return ActorStateDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "content id is required")
	}
	types, err := s.interactionRepo.ListActorTypes(ctx, userID, contentID)
	if err != nil {
		return ActorStateDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load actor state")
	}
	return ActorStateDTO{
		ContentID: contentID,
		UserID:    userID,
		Types:     types,
	}, nil
}
