package subscriptions

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/internal/users"
	"github.com/plasma-social/plasma-backend/pkg/db"
	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/enums"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
	"github.com/plasma-social/plasma-backend/pkg/logger"
)

// ServiceParams groups dependencies for the subscription service.
type ServiceParams struct {
	SubscriptionRepo *Repository
	UserRepo         *users.Repository
	DBClient         *db.Client
	Logger           *logger.Logger
}

// Service exposes business rules for creator subscriptions.
type Service interface {
	Subscribe(ctx context.Context, input SubscribeInput) (SubscriptionDTO, error)
	Cancel(ctx context.Context, id, actorID uuid.UUID) error
	ListForSubscriber(ctx context.Context, subscriberID uuid.UUID, cursor string, limit int) (SubscriptionsPageDTO, error)
	ListForCreator(ctx context.Context, creatorID uuid.UUID, cursor string, limit int) (SubscriptionsPageDTO, error)
}

type service struct {
	subscriptionRepo *Repository
	userRepo         *users.Repository
	dbClient         *db.Client
	logg             *logger.Logger
}

// NewService builds a subscription service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.SubscriptionRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subscription repo is required")
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
		subscriptionRepo: params.SubscriptionRepo,
		userRepo:         params.UserRepo,
		dbClient:         params.DBClient,
		logg:             params.Logger,
	}, nil
}

// Subscribe starts an active subscription and moves the follower tallies in
// the same transaction. A second active subscription to the same creator is
// a conflict.
func (s *service) Subscribe(ctx context.Context, input SubscribeInput) (SubscriptionDTO, error) {
	tier, err := enums.ParseSubscriptionTier(strings.TrimSpace(input.Tier))
	if err != nil {
		return SubscriptionDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid subscription tier")
	}
	if input.SubscriberID == uuid.Nil || input.CreatorID == uuid.Nil {
		return SubscriptionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "subscriber and creator ids are required")
	}
	if input.SubscriberID == input.CreatorID {
		return SubscriptionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "cannot subscribe to yourself")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(input.MonthlyAmount))
	if err != nil || amount.IsNegative() {
		return SubscriptionDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid monthly amount")
	}
	amount = amount.Round(2)

	for _, id := range []uuid.UUID{input.SubscriberID, input.CreatorID} {
		if _, err := s.userRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return SubscriptionDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
			}
			return SubscriptionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
		}
	}

	if _, err := s.subscriptionRepo.FindActive(ctx, input.SubscriberID, input.CreatorID); err == nil {
		return SubscriptionDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "already subscribed to this creator")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return SubscriptionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing subscription")
	}

	var created *models.Subscription
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		row, err := s.subscriptionRepo.WithTx(tx).Create(ctx, &models.Subscription{
			SubscriberID:  input.SubscriberID,
			CreatorID:     input.CreatorID,
			Tier:          tier,
			MonthlyAmount: amount,
			IsActive:      true,
		})
		if err != nil {
			return err
		}
		if err := s.userRepo.WithTx(tx).TouchFollowCounts(ctx, input.CreatorID, input.SubscriberID, 1); err != nil {
			return err
		}
		created = row
		return nil
	})
	if err != nil {
		return SubscriptionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subscription")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"subscriber_id": input.SubscriberID.String(),
		"creator_id":    input.CreatorID.String(),
		"tier":          tier.String(),
	})
	s.logg.Info(logCtx, "subscription started")

	return toDTO(created), nil
}

// Cancel deactivates the actor's subscription and unwinds the follower
// tallies in the same transaction.
func (s *service) Cancel(ctx context.Context, id, actorID uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "subscription id is required")
	}
	if actorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor id is required")
	}

	sub, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "subscription not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription")
	}
	if sub.SubscriberID != actorID {
		return pkgerrors.New(pkgerrors.CodeValidation, "only the subscriber can cancel")
	}
	if !sub.IsActive {
		return pkgerrors.New(pkgerrors.CodeConflict, "subscription already canceled")
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.subscriptionRepo.WithTx(tx).Deactivate(ctx, id); err != nil {
			return err
		}
		return s.userRepo.WithTx(tx).TouchFollowCounts(ctx, sub.CreatorID, sub.SubscriberID, -1)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel subscription")
	}
	return nil
}

// ListForSubscriber returns the active subscriptions one user pays for.
func (s *service) ListForSubscriber(ctx context.Context, subscriberID uuid.UUID, cursor string, limit int) (SubscriptionsPageDTO, error) {
	if subscriberID == uuid.Nil {
		return SubscriptionsPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "subscriber id is required")
	}
	rows, nextCursor, err := s.subscriptionRepo.ListForSubscriber(ctx, subscriberID, cursor, limit)
	if err != nil {
		return SubscriptionsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscriptions")
	}
	return toPage(rows, nextCursor), nil
}

// ListForCreator returns the active subscriptions backing one creator.
func (s *service) ListForCreator(ctx context.Context, creatorID uuid.UUID, cursor string, limit int) (SubscriptionsPageDTO, error) {
	if creatorID == uuid.Nil {
		return SubscriptionsPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "creator id is required")
	}
	rows, nextCursor, err := s.subscriptionRepo.ListForCreator(ctx, creatorID, cursor, limit)
	if err != nil {
		return SubscriptionsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscribers")
	}
	return toPage(rows, nextCursor), nil
}

func toPage(rows []models.Subscription, nextCursor string) SubscriptionsPageDTO {
	items := make([]SubscriptionDTO, 0, len(rows))
	for i := range rows {
		items = append(items, toDTO(&rows[i]))
	}
	return SubscriptionsPageDTO{Items: items, NextCursor: nextCursor}
}
