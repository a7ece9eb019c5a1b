package content

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/pagination"
)

// Repository encapsulates content persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a content repository bound to the provided gorm DB.
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

// Create inserts the content row.
func (r *Repository) Create(ctx context.Context, item *models.Content) (*models.Content, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindByID loads a single content row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	var item models.Content
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// feedRecord flattens the content row with its author columns for feed queries.
type feedRecord struct {
	models.Content
	AuthorUsername    string  `gorm:"column:author_username"`
	AuthorDisplayName string  `gorm:"column:author_display_name"`
	AuthorAvatar      *string `gorm:"column:author_avatar"`
}

// ListFeed returns a keyset page of published content joined with author columns.
func (r *Repository) ListFeed(ctx context.Context, cursor string, limit int) ([]feedRecord, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Table("content c").
		Select("c.*, u.username AS author_username, u.display_name AS author_display_name, u.avatar AS author_avatar").
		Joins("JOIN users u ON u.id = c.user_id").
		Where("c.is_published = ?", true)

	if decodedCursor != nil {
		query = query.Where("(c.created_at < ?) OR (c.created_at = ? AND c.id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []feedRecord
	err = query.Order("c.created_at DESC").Order("c.id DESC").
		Limit(pagination.LimitWithBuffer(limit)).
		Scan(&records).Error
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return records, nextCursor, nil
}

// ListByUser returns a keyset page of one creator's content, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) ([]models.Content, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Content{}).
		Where("user_id = ?", userID)

	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var rows []models.Content
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

// Delete removes the content row. Interactions and comments are deleted by
// the service inside the same transaction.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Content{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteInteractions drops all ledger rows pointing at the content item.
func (r *Repository) DeleteInteractions(ctx context.Context, contentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Delete(&models.Interaction{}).
		Error
}

// DeleteComments drops all comments pointing at the content item.
func (r *Repository) DeleteComments(ctx context.Context, contentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Delete(&models.Comment{}).
		Error
}

// AddEarnings bumps the denormalized per-content earnings tally.
func (r *Repository) AddEarnings(ctx context.Context, id uuid.UUID, amount string) error {
	return r.db.WithContext(ctx).
		Model(&models.Content{}).
		Where("id = ?", id).
		UpdateColumn("earnings", gorm.Expr("earnings + ?", amount)).
		Error
}
