package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plasma-social/plasma-backend/pkg/enums"
)

// Subscription links a subscriber to a creator at a paid tier.
type Subscription struct {
	ID            uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SubscriberID  uuid.UUID              `gorm:"column:subscriber_id;type:uuid;not null;index:subscriptions_subscriber_id_idx"`
	CreatorID     uuid.UUID              `gorm:"column:creator_id;type:uuid;not null;index:subscriptions_creator_id_idx"`
	Tier          enums.SubscriptionTier `gorm:"column:tier;type:subscription_tier_enum;not null"`
	MonthlyAmount decimal.Decimal        `gorm:"column:monthly_amount;type:numeric(10,2);not null"`
	IsActive      bool                   `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time              `gorm:"column:created_at;autoCreateTime"`
}
