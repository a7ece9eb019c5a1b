package earnings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/enums"
)

// RecordEarningInput carries the validated fields for one ledger entry.
// ContentID, when present, attributes the amount to a content item so its
// denormalized earnings tally moves in the same transaction.
type RecordEarningInput struct {
	UserID      uuid.UUID  `json:"user_id" validate:"required"`
	Source      string     `json:"source" validate:"required"`
	Amount      string     `json:"amount" validate:"required"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	ContentID   *uuid.UUID `json:"content_id"`
}

// EarningDTO is the public projection of one ledger entry.
type EarningDTO struct {
	ID          uuid.UUID           `json:"id"`
	UserID      uuid.UUID           `json:"user_id"`
	Source      enums.EarningSource `json:"source"`
	Amount      decimal.Decimal     `json:"amount"`
	Description *string             `json:"description,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// EarningsPageDTO is a cursor-paginated list of ledger entries.
type EarningsPageDTO struct {
	Items      []EarningDTO `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// SummaryDTO reports the rollup windows for one user as of a point in time.
// ThisWeek is a rolling seven-day window, not a calendar week.
type SummaryDTO struct {
	UserID    uuid.UUID       `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	Today     decimal.Decimal `json:"today"`
	ThisWeek  decimal.Decimal `json:"this_week"`
	ThisMonth decimal.Decimal `json:"this_month"`
	AsOf      time.Time       `json:"as_of"`
}

func toDTO(e *models.Earning) EarningDTO {
	return EarningDTO{
		ID:          e.ID,
		UserID:      e.UserID,
		Source:      e.Source,
		Amount:      e.Amount,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}
