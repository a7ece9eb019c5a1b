package interactions

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/enums"
	"github.com/plasma-social/plasma-backend/pkg/pagination"
)

// Repository encapsulates interaction ledger persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an interaction repository bound to the provided gorm DB.
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

// Insert appends one ledger row. The composite unique index rejects a second
// row for the same (user, content, type) tuple; that error bubbles up raw so
// the service can classify it.
func (r *Repository) Insert(ctx context.Context, interaction *models.Interaction) (*models.Interaction, error) {
	if interaction.ID == uuid.Nil {
		interaction.ID = uuid.New()
	}
	if interaction.EnergyValue == 0 {
		interaction.EnergyValue = 1
	}
	if err := r.db.WithContext(ctx).Create(interaction).Error; err != nil {
		return nil, err
	}
	return interaction, nil
}

// IncrementCounter bumps the denormalized counter column matching the
// interaction type by one, in a single statement.
func (r *Repository) IncrementCounter(ctx context.Context, contentID uuid.UUID, interactionType enums.InteractionType) error {
	column := interactionType.CounterColumn()
	if column == "" {
		return fmt.Errorf("no counter column for interaction type %q", interactionType)
	}

	result := r.db.WithContext(ctx).
		Model(&models.Content{}).
		Where("id = ?", contentID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByContent returns a keyset page of ledger rows for one content item,
// newest first.
func (r *Repository) ListByContent(ctx context.Context, contentID uuid.UUID, cursor string, limit int) ([]models.Interaction, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("content_id = ?", contentID)

	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var rows []models.Interaction
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

// ListActorTypes returns the interaction types one actor has already spent
// on a content item.
func (r *Repository) ListActorTypes(ctx context.Context, userID, contentID uuid.UUID) ([]enums.InteractionType, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Order("type ASC").
		Pluck("type", &values).Error
	if err != nil {
		return nil, err
	}

	types := make([]enums.InteractionType, 0, len(values))
	for _, value := range values {
		types = append(types, enums.InteractionType(value))
	}
	return types, nil
}

// HasInteracted reports whether the tuple already exists in the ledger.
func (r *Repository) HasInteracted(ctx context.Context, userID, contentID uuid.UUID, interactionType enums.InteractionType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("user_id = ? AND content_id = ? AND type = ?", userID, contentID, interactionType).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
