package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user remark on a content item; replies reference a parent
// comment within the same content.
type Comment struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	ContentID uuid.UUID  `gorm:"column:content_id;type:uuid;not null;index:comments_content_id_idx"`
	ParentID  *uuid.UUID `gorm:"column:parent_id;type:uuid"`
	Body      string     `gorm:"column:body;type:text;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
