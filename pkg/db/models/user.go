package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents the canonical creator/consumer identity.
type User struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username    string    `gorm:"column:username;type:text;not null;uniqueIndex"`
	Email       string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	DisplayName string    `gorm:"column:display_name;type:text;not null"`
	Bio         *string   `gorm:"column:bio;type:text"`
	Avatar      *string   `gorm:"column:avatar;type:text"`
	EnergyLevel int       `gorm:"column:energy_level;not null;default:0"`
	// TotalEarnings is a lifetime cache reconciled inside the earning append
	// transaction; it is never written from anywhere else.
	TotalEarnings  decimal.Decimal `gorm:"column:total_earnings;type:numeric(10,2);not null;default:0"`
	FollowersCount int             `gorm:"column:followers_count;not null;default:0"`
	FollowingCount int             `gorm:"column:following_count;not null;default:0"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}
