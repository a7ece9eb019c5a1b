package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/plasma-social/plasma-backend/pkg/enums"
)

// UniqueInteractionConstraint names the composite unique index the ledger
// relies on to reject duplicate interactions at the storage layer.
const UniqueInteractionConstraint = "interactions_user_content_type_key"

// Interaction records a single energy action by a user against one content
// item. Rows are immutable; the (user, content, type) tuple is unique.
type Interaction struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID             `gorm:"column:user_id;type:uuid;not null;uniqueIndex:interactions_user_content_type_key"`
	ContentID   uuid.UUID             `gorm:"column:content_id;type:uuid;not null;index:interactions_content_id_idx;uniqueIndex:interactions_user_content_type_key"`
	Type        enums.InteractionType `gorm:"column:type;type:interaction_type_enum;not null;uniqueIndex:interactions_user_content_type_key"`
	EnergyValue int                   `gorm:"column:energy_value;not null;default:1"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
}
