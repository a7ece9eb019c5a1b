package comments

import (
	"time"

	"github.com/google/uuid"

	"github.com/plasma-social/plasma-backend/internal/users"
	"github.com/plasma-social/plasma-backend/pkg/db/models"
)

// CreateCommentInput carries the validated fields for posting a comment.
type CreateCommentInput struct {
	UserID    uuid.UUID  `json:"user_id" validate:"required"`
	ContentID uuid.UUID  `json:"content_id" validate:"required"`
	ParentID  *uuid.UUID `json:"parent_id"`
	Body      string     `json:"body" validate:"required,min=1,max=2000"`
}

// CommentDTO is the public projection of a comment row.
type CommentDTO struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	ContentID uuid.UUID  `json:"content_id"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
}

// CommentWithAuthorDTO pairs a comment with its author summary.
type CommentWithAuthorDTO struct {
	CommentDTO
	Author users.UserSummaryDTO `json:"author"`
}

// CommentsPageDTO is a cursor-paginated comment thread slice.
type CommentsPageDTO struct {
	Items      []CommentWithAuthorDTO `json:"items"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

func toDTO(c *models.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		UserID:    c.UserID,
		ContentID: c.ContentID,
		ParentID:  c.ParentID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}
