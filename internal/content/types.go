package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plasma-social/plasma-backend/internal/users"
	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/enums"
)

// CreateContentInput carries the validated fields for publishing content.
type CreateContentInput struct {
	UserID       uuid.UUID `json:"user_id" validate:"required"`
	Type         string    `json:"type" validate:"required"`
	Title        string    `json:"title" validate:"required,min=1,max=200"`
	Description  *string   `json:"description" validate:"omitempty,max=2000"`
	FileURL      *string   `json:"file_url" validate:"omitempty,url"`
	ThumbnailURL *string   `json:"thumbnail_url" validate:"omitempty,url"`
	Duration     *int      `json:"duration" validate:"omitempty,min=1"`
	IsLive       bool      `json:"is_live"`
}

// ContentDTO is the public projection of a content row, counters included.
type ContentDTO struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"user_id"`
	Type         enums.ContentType `json:"type"`
	Title        string            `json:"title"`
	Description  *string           `json:"description,omitempty"`
	FileURL      *string           `json:"file_url,omitempty"`
	ThumbnailURL *string           `json:"thumbnail_url,omitempty"`
	Duration     *int              `json:"duration,omitempty"`
	EnergyBoosts int               `json:"energy_boosts"`
	Resonance    int               `json:"resonance"`
	Amplify      int               `json:"amplify"`
	Earnings     decimal.Decimal   `json:"earnings"`
	IsPublished  bool              `json:"is_published"`
	IsLive       bool              `json:"is_live"`
	ViewersCount int               `json:"viewers_count"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ContentWithAuthorDTO pairs a content item with its author summary for feeds.
type ContentWithAuthorDTO struct {
	ContentDTO
	Author users.UserSummaryDTO `json:"author"`
}

// FeedPageDTO is a cursor-paginated feed slice.
type FeedPageDTO struct {
	Items      []ContentWithAuthorDTO `json:"items"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

// ContentPageDTO is a cursor-paginated list for a single creator.
type ContentPageDTO struct {
	Items      []ContentDTO `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func toDTO(c *models.Content) ContentDTO {
	return ContentDTO{
		ID:           c.ID,
		UserID:       c.UserID,
		Type:         c.Type,
		Title:        c.Title,
		Description:  c.Description,
		FileURL:      c.FileURL,
		ThumbnailURL: c.ThumbnailURL,
		Duration:     c.Duration,
		EnergyBoosts: c.EnergyBoosts,
		Resonance:    c.Resonance,
		Amplify:      c.Amplify,
		Earnings:     c.Earnings,
		IsPublished:  c.IsPublished,
		IsLive:       c.IsLive,
		ViewersCount: c.ViewersCount,
		CreatedAt:    c.CreatedAt,
	}
}
