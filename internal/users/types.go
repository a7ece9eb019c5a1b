package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plasma-social/plasma-backend/pkg/db/models"
)

// CreateUserInput carries the validated fields for registering a user.
type CreateUserInput struct {
	Username    string  `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email       string  `json:"email" validate:"required,email"`
	DisplayName string  `json:"display_name" validate:"required,min=1,max=80"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
	Avatar      *string `json:"avatar" validate:"omitempty,url"`
}

// UserDTO is the public projection of a user row.
type UserDTO struct {
	ID             uuid.UUID       `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	DisplayName    string          `json:"display_name"`
	Bio            *string         `json:"bio,omitempty"`
	Avatar         *string         `json:"avatar,omitempty"`
	EnergyLevel    int             `json:"energy_level"`
	TotalEarnings  decimal.Decimal `json:"total_earnings"`
	FollowersCount int             `json:"followers_count"`
	FollowingCount int             `json:"following_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

// UserSummaryDTO is the compact author projection embedded in content views.
type UserSummaryDTO struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Avatar      *string   `json:"avatar,omitempty"`
}

// UsersPageDTO is a cursor-paginated list of users.
type UsersPageDTO struct {
	Items      []UserDTO `json:"items"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

func toDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		Bio:            u.Bio,
		Avatar:         u.Avatar,
		EnergyLevel:    u.EnergyLevel,
		TotalEarnings:  u.TotalEarnings,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		CreatedAt:      u.CreatedAt,
	}
}

// ToSummary converts a user row into the embedded author projection.
func ToSummary(u *models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
	}
}
