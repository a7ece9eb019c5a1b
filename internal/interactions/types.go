package interactions

import (
	"time"

	"github.com/google/uuid"

	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/enums"
)

// RecordInteractionInput carries the validated fields for one energy action.
// EnergyValue defaults to 1 when omitted.
type RecordInteractionInput struct {
	UserID      uuid.UUID `json:"user_id" validate:"required"`
	ContentID   uuid.UUID `json:"content_id" validate:"required"`
	Type        string    `json:"type" validate:"required"`
	EnergyValue int       `json:"energy_value" validate:"omitempty,min=1"`
}

// InteractionDTO is the public projection of one ledger row.
type InteractionDTO struct {
	ID          uuid.UUID             `json:"id"`
	UserID      uuid.UUID             `json:"user_id"`
	ContentID   uuid.UUID             `json:"content_id"`
	Type        enums.InteractionType `json:"type"`
	EnergyValue int                   `json:"energy_value"`
	CreatedAt   time.Time             `json:"created_at"`
}

// InteractionsPageDTO is a cursor-paginated list of ledger rows.
type InteractionsPageDTO struct {
	Items      []InteractionDTO `json:"items"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// ActorStateDTO reports which interaction types an actor has already spent
// on a content item.
type ActorStateDTO struct {
	ContentID uuid.UUID               `json:"content_id"`
	UserID    uuid.UUID               `json:"user_id"`
	Types     []enums.InteractionType `json:"types"`
}

func toDTO(i *models.Interaction) InteractionDTO {
	return InteractionDTO{
		ID:          i.ID,
		UserID:      i.UserID,
		ContentID:   i.ContentID,
		Type:        i.Type,
		EnergyValue: i.EnergyValue,
		CreatedAt:   i.CreatedAt,
	}
}
