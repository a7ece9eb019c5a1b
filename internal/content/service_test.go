package content

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/internal/users"
	"github.com/plasma-social/plasma-backend/pkg/db"
	"github.com/plasma-social/plasma-backend/pkg/db/models"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
	"github.com/plasma-social/plasma-backend/pkg/logger"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := setupContentTestDB(t)
	svc, err := NewService(ServiceParams{
		ContentRepo: NewRepository(conn),
		UserRepo:    users.NewRepository(conn),
		DBClient:    db.NewWithConn(conn),
		Logger:      logger.New(logger.Options{ServiceName: "content-test", Output: io.Discard}),
	})
	require.NoError(t, err)
	return svc, conn
}

func TestServiceCreateContent(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	author := seedAuthor(t, conn, "creator")

	created, err := svc.CreateContent(ctx, CreateContentInput{
		UserID: author.ID,
		Type:   "video",
		Title:  "  Launch day  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Launch day", created.Title)
	assert.True(t, created.IsPublished)
	assert.Zero(t, created.EnergyBoosts)

	t.Run("unknown author", func(t *testing.T) {
		_, err := svc.CreateContent(ctx, CreateContentInput{
			UserID: uuid.New(),
			Type:   "post",
			Title:  "orphan",
		})
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
	})

	t.Run("bad type", func(t *testing.T) {
		_, err := svc.CreateContent(ctx, CreateContentInput{
			UserID: author.ID,
			Type:   "podcast",
			Title:  "nope",
		})
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})
}

func TestServiceGetContentIncludesAuthor(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	author := seedAuthor(t, conn, "host")
	item := seedContent(t, conn, author.ID, "show", time.Now().UTC())

	got, err := svc.GetContent(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, "host", got.Author.Username)

	_, err = svc.GetContent(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestServiceDeleteContentCascades(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	author := seedAuthor(t, conn, "owner")
	fan := seedAuthor(t, conn, "fan")
	item := seedContent(t, conn, author.ID, "doomed", time.Now().UTC())

	require.NoError(t, conn.Create(&models.Interaction{
		ID:        uuid.New(),
		UserID:    fan.ID,
		ContentID: item.ID,
		Type:      "boost",
	}).Error)
	require.NoError(t, conn.Create(&models.Comment{
		ID:        uuid.New(),
		UserID:    fan.ID,
		ContentID: item.ID,
		Body:      "great",
	}).Error)

	require.NoError(t, svc.DeleteContent(ctx, item.ID))

	var interactionCount, commentCount int64
	require.NoError(t, conn.Model(&models.Interaction{}).Where("content_id = ?", item.ID).Count(&interactionCount).Error)
	require.NoError(t, conn.Model(&models.Comment{}).Where("content_id = ?", item.ID).Count(&commentCount).Error)
	assert.Zero(t, interactionCount)
	assert.Zero(t, commentCount)

	err := svc.DeleteContent(ctx, item.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
