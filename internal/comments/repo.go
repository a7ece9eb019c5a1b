package comments

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/pagination"
)

// Repository encapsulates comment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a comment repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the comment row.
func (r *Repository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// FindByID loads a single comment row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// commentRecord flattens the comment row with its author columns.
type commentRecord struct {
	models.Comment
	AuthorUsername    string  `gorm:"column:author_username"`
	AuthorDisplayName string  `gorm:"column:author_display_name"`
	AuthorAvatar      *string `gorm:"column:author_avatar"`
}

// ListByContent returns a keyset page of a content item's comments with
// author columns, newest first.
func (r *Repository) ListByContent(ctx context.Context, contentID uuid.UUID, cursor string, limit int) ([]commentRecord, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Table("comments c").
		Select("c.*, u.username AS author_username, u.display_name AS author_display_name, u.avatar AS author_avatar").
		Joins("JOIN users u ON u.id = c.user_id").
		Where("c.content_id = ?", contentID)

	if decodedCursor != nil {
		query = query.Where("(c.created_at < ?) OR (c.created_at = ? AND c.id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []commentRecord
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

// Delete removes one comment row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
