package users

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/pagination"
)

// Repository encapsulates user persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a user repository bound to the provided gorm DB.
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

// Create inserts the user row. Unique violations bubble up to the caller.
func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID loads a single user row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername loads a user by its unique handle.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", strings.ToLower(username)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns a keyset page of users ordered by newest first.
func (r *Repository) List(ctx context.Context, cursor string, limit int) ([]models.User, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).Model(&models.User{})
	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var rows []models.User
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

// AddEnergy bumps the actor's energy level by the given amount.
func (r *Repository) AddEnergy(ctx context.Context, id uuid.UUID, amount int) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("energy_level", gorm.Expr("energy_level + ?", amount)).
		Error
}

// TouchFollowCounts adjusts follower/following tallies after a subscription change.
func (r *Repository) TouchFollowCounts(ctx context.Context, creatorID, subscriberID uuid.UUID, delta int) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", creatorID).
		UpdateColumn("followers_count", gorm.Expr("followers_count + ?", delta)).
		Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", subscriberID).
		UpdateColumn("following_count", gorm.Expr("following_count + ?", delta)).
		Error
}
