package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plasma-social/plasma-backend/pkg/enums"
)

// Content is a published feed item (post, video, giig or livestream).
// The three energy counters are denormalized tallies of accepted interactions
// and are mutated only inside the interaction insert transaction.
type Content struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index:content_user_id_idx"`
	Type         enums.ContentType `gorm:"column:type;type:content_type_enum;not null"`
	Title        string            `gorm:"column:title;type:text;not null"`
	Description  *string           `gorm:"column:description;type:text"`
	FileURL      *string           `gorm:"column:file_url;type:text"`
	ThumbnailURL *string           `gorm:"column:thumbnail_url;type:text"`
	// Duration is seconds of playback for video-like content.
	Duration     *int            `gorm:"column:duration"`
	EnergyBoosts int             `gorm:"column:energy_boosts;not null;default:0"`
	Resonance    int             `gorm:"column:resonance;not null;default:0"`
	Amplify      int             `gorm:"column:amplify;not null;default:0"`
	Earnings     decimal.Decimal `gorm:"column:earnings;type:numeric(10,2);not null;default:0"`
	IsPublished  bool            `gorm:"column:is_published;not null;default:true"`
	IsLive       bool            `gorm:"column:is_live;not null;default:false"`
	ViewersCount int             `gorm:"column:viewers_count;not null;default:0"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName maps the model to the singular "content" table.
func (Content) TableName() string {
	return "content"
}
