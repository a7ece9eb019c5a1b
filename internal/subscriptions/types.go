package subscriptions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/enums"
)

// SubscribeInput carries the validated fields for starting a subscription.
type SubscribeInput struct {
	SubscriberID  uuid.UUID `json:"subscriber_id" validate:"required"`
	CreatorID     uuid.UUID `json:"creator_id" validate:"required"`
	Tier          string    `json:"tier" validate:"required"`
	MonthlyAmount string    `json:"monthly_amount" validate:"required"`
}

// SubscriptionDTO is the public projection of a subscription row.
type SubscriptionDTO struct {
	ID            uuid.UUID              `json:"id"`
	SubscriberID  uuid.UUID              `json:"subscriber_id"`
	CreatorID     uuid.UUID              `json:"creator_id"`
	Tier          enums.SubscriptionTier `json:"tier"`
	MonthlyAmount decimal.Decimal        `json:"monthly_amount"`
	IsActive      bool                   `json:"is_active"`
	CreatedAt     time.Time              `json:"created_at"`
}

// SubscriptionsPageDTO is a cursor-paginated subscription list.
type SubscriptionsPageDTO struct {
	Items      []SubscriptionDTO `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func toDTO(s *models.Subscription) SubscriptionDTO {
	return SubscriptionDTO{
		ID:            s.ID,
		SubscriberID:  s.SubscriberID,
		CreatorID:     s.CreatorID,
		Tier:          s.Tier,
		MonthlyAmount: s.MonthlyAmount,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}
