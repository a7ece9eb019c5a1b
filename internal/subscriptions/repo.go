package subscriptions

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/pagination"
)

// Repository encapsulates subscription persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a subscription repository bound to the provided gorm DB.
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

// Create inserts the subscription row.
func (r *Repository) Create(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// FindByID loads a single subscription row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindActive loads the active subscription between a subscriber and creator,
// if one exists.
func (r *Repository) FindActive(ctx context.Context, subscriberID, creatorID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND creator_id = ? AND is_active = ?", subscriberID, creatorID, true).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Deactivate flips one subscription row to inactive.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForSubscriber returns a keyset page of one user's subscriptions.
func (r *Repository) ListForSubscriber(ctx context.Context, subscriberID uuid.UUID, cursor string, limit int) ([]models.Subscription, string, error) {
	return r.list(ctx, "subscriber_id", subscriberID, cursor, limit)
}

// ListForCreator returns a keyset page of one creator's subscribers.
func (r *Repository) ListForCreator(ctx context.Context, creatorID uuid.UUID, cursor string, limit int) ([]models.Subscription, string, error) {
	return r.list(ctx, "creator_id", creatorID, cursor, limit)
}

func (r *Repository) list(ctx context.Context, column string, id uuid.UUID, cursor string, limit int) ([]models.Subscription, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where(column+" = ?", id).
		Where("is_active = ?", true)

	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var rows []models.Subscription
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
