package earnings

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/pagination"
)

// Repository encapsulates earnings ledger persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an earnings repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to an open transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Insert appends one immutable ledger entry.
func (r *Repository) Insert(ctx context.Context, earning *models.Earning) (*models.Earning, error) {
	if earning.ID == uuid.Nil {
		earning.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(earning).Error; err != nil {
		return nil, err
	}
	return earning, nil
}

// AddToUserTotal bumps the user's lifetime cache in a single statement.
// Callers run this inside the same transaction as Insert.
func (r *Repository) AddToUserTotal(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("total_earnings", gorm.Expr("total_earnings + ?", amount.String()))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumTotal returns the lifetime sum of all ledger entries, with no time bound.
func (r *Repository) SumTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return r.sum(ctx, userID, nil, nil)
}

// SumSince returns the sum of ledger entries in [since, asOf].
func (r *Repository) SumSince(ctx context.Context, userID uuid.UUID, since, asOf time.Time) (decimal.Decimal, error) {
	return r.sum(ctx, userID, &since, &asOf)
}

func (r *Repository) sum(ctx context.Context, userID uuid.UUID, since, until *time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Earning{}).
		Where("user_id = ?", userID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	if until != nil {
		query = query.Where("created_at <= ?", *until)
	}

	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	if err := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// ListByUser returns a keyset page of one user's ledger entries, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) ([]models.Earning, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Earning{}).
		Where("user_id = ?", userID)

	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var rows []models.Earning
	err = query.Order("created_at DESC").Order("id DESC").
		Limit(pagination.LimitWithBuffer(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > normalizedLimit {
		rows = rows[:normalizedLimit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return rows, nextCursor, nil
}
