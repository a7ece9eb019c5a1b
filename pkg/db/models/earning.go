package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plasma-social/plasma-backend/pkg/enums"
)

// Earning is one immutable monetary ledger entry attributed to a user.
// Amounts are signed; refunds and chargebacks are negative rows.
type Earning struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index:earnings_user_id_idx"`
	Source      enums.EarningSource `gorm:"column:source;type:earning_source_enum;not null"`
	Amount      decimal.Decimal     `gorm:"column:amount;type:numeric(10,2);not null"`
	Description *string             `gorm:"column:description;type:text"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
}
