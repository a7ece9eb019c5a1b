package earnings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/internal/content"
	"github.com/plasma-social/plasma-backend/internal/users"
	"github.com/plasma-social/plasma-backend/pkg/db"
	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/enums"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
	"github.com/plasma-social/plasma-backend/pkg/logger"
)

// weekWindow is the rolling lookback for the weekly rollup.
const weekWindow = 7 * 24 * time.Hour

// ServiceParams groups dependencies for the earnings service.
type ServiceParams struct {
	EarningRepo *Repository
	UserRepo    *users.Repository
	ContentRepo *content.Repository
	DBClient    *db.Client
	Logger      *logger.Logger
}

// Service exposes the earnings ledger and its rollup windows.
type Service interface {
	Record(ctx context.Context, input RecordEarningInput) (EarningDTO, error)
	Summarize(ctx context.Context, userID uuid.UUID, asOf time.Time) (SummaryDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) (EarningsPageDTO, error)
}

type service struct {
	earningRepo *Repository
	userRepo    *users.Repository
	contentRepo *content.Repository
	dbClient    *db.Client
	logg        *logger.Logger
}

// NewService builds an earnings service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.EarningRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "earning repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.ContentRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content repo is required")
	}
	if params.DBClient == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		earningRepo: params.EarningRepo,
		userRepo:    params.UserRepo,
		contentRepo: params.ContentRepo,
		dbClient:    params.DBClient,
		logg:        params.Logger,
	}, nil
}

// Record appends one ledger entry and reconciles the user's lifetime cache
// inside a single transaction. When the entry is attributed to a content
// item, its earnings tally moves in the same transaction too.
func (s *service) Record(ctx context.Context, input RecordEarningInput) (EarningDTO, error) {
	source, err := enums.ParseEarningSource(strings.TrimSpace(input.Source))
	if err != nil {
		return EarningDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid earning source")
	}
	if input.UserID == uuid.Nil {
		return EarningDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(input.Amount))
	if err != nil {
		return EarningDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount")
	}
	// Negative entries (refunds, chargebacks) and zero adjustments are valid.
	amount = amount.Round(2)

	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EarningDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return EarningDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if input.ContentID != nil {
		if _, err := s.contentRepo.FindByID(ctx, *input.ContentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return EarningDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "content not found")
			}
			return EarningDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load content")
		}
	}

	var recorded *models.Earning
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.earningRepo.WithTx(tx)

		row, err := repo.Insert(ctx, &models.Earning{
			UserID:      input.UserID,
			Source:      source,
			Amount:      amount,
			Description: input.Description,
		})
		if err != nil {
			return err
		}
		if err := repo.AddToUserTotal(ctx, input.UserID, amount); err != nil {
			return err
		}
		if input.ContentID != nil {
			if err := s.contentRepo.WithTx(tx).AddEarnings(ctx, *input.ContentID, amount.String()); err != nil {
				return err
			}
		}
		recorded = row
		return nil
	})
	if err != nil {
		return EarningDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record earning")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"user_id": input.UserID.String(),
		"source":  source.String(),
		"amount":  amount.String(),
	})
	s.logg.Info(logCtx, "earning recorded")

	return toDTO(recorded), nil
}

// Summarize computes the rollup windows for one user. Windows are anchored in
// UTC: today starts at midnight, the week is a rolling seven-day lookback from
// the start of today with an inclusive lower bound, and the month starts on
// its first day. The lifetime total is unconditional and ignores asOf.
func (s *service) Summarize(ctx context.Context, userID uuid.UUID, asOf time.Time) (SummaryDTO, error) {
	if userID == uuid.Nil {
		return SummaryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SummaryDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return SummaryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	if asOf.IsZero() {
		asOf = time.Now()
	}
	asOf = asOf.UTC()

	dayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := dayStart.Add(-weekWindow)
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)

	total, err := s.earningRepo.SumTotal(ctx, userID)
	if err != nil {
		return SummaryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum total")
	}
	today, err := s.earningRepo.SumSince(ctx, userID, dayStart, asOf)
	if err != nil {
		return SummaryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum today")
	}
	week, err := s.earningRepo.SumSince(ctx, userID, weekStart, asOf)
	if err != nil {
		return SummaryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum week")
	}
	month, err := s.earningRepo.SumSince(ctx, userID, monthStart, asOf)
	if err != nil {
		return SummaryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum month")
	}

	return SummaryDTO{
		UserID:    userID,
		Total:     total,
		Today:     today,
		ThisWeek:  week,
		ThisMonth: month,
		AsOf:      asOf,
	}, nil
}

// ListByUser returns the newest-first ledger page for one user.
func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) (EarningsPageDTO, error) {
	if userID == uuid.Nil {
		return EarningsPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, nextCursor, err := s.earningRepo.ListByUser(ctx, userID, cursor, limit)
	if err != nil {
		return EarningsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list earnings")
	}
	items := make([]EarningDTO, 0, len(rows))
	for i := range rows {
		items = append(items, toDTO(&rows[i]))
	}
	return EarningsPageDTO{Items: items, NextCursor: nextCursor}, nil
}
