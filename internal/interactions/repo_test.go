package interactions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/pkg/db"
	"github.com/plasma-social/plasma-backend/pkg/db/models"
	"github.com/plasma-social/plasma-backend/pkg/enums"
)

func setupInteractionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  display_name TEXT NOT NULL,
  bio TEXT,
  avatar TEXT,
  energy_level INTEGER NOT NULL DEFAULT 0,
  total_earnings NUMERIC NOT NULL DEFAULT 0,
  followers_count INTEGER NOT NULL DEFAULT 0,
  following_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS content (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  type TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  file_url TEXT,
  thumbnail_url TEXT,
  duration INTEGER,
  energy_boosts INTEGER NOT NULL DEFAULT 0,
  resonance INTEGER NOT NULL DEFAULT 0,
  amplify INTEGER NOT NULL DEFAULT 0,
  earnings NUMERIC NOT NULL DEFAULT 0,
  is_published INTEGER NOT NULL DEFAULT 1,
  is_live INTEGER NOT NULL DEFAULT 0,
  viewers_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS interactions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  content_id TEXT NOT NULL,
  type TEXT NOT NULL,
  energy_value INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  CONSTRAINT interactions_user_content_type_key UNIQUE (user_id, content_id, type)
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func seedActor(t *testing.T, conn *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:            uuid.New(),
		Username:      username,
		Email:         username + "@plasma.social",
		DisplayName:   username,
		TotalEarnings: decimal.Zero,
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func seedContent(t *testing.T, conn *gorm.DB, userID uuid.UUID) *models.Content {
	t.Helper()
	item := &models.Content{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        enums.ContentTypePost,
		Title:       "target",
		Earnings:    decimal.Zero,
		IsPublished: true,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, conn.Create(item).Error)
	return item
}

func contentCounters(t *testing.T, conn *gorm.DB, id uuid.UUID) (boosts, resonance, amplify int) {
	t.Helper()
	var row models.Content
	require.NoError(t, conn.Where("id = ?", id).First(&row).Error)
	return row.EnergyBoosts, row.Resonance, row.Amplify
}

func TestRepositoryInsertEnforcesUniqueTuple(t *testing.T) {
	conn := setupInteractionsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	actor := seedActor(t, conn, "fan")
	item := seedContent(t, conn, actor.ID)

	first, err := repo.Insert(ctx, &models.Interaction{
		UserID:    actor.ID,
		ContentID: item.ID,
		Type:      enums.InteractionTypeBoost,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.EnergyValue)

	_, err = repo.Insert(ctx, &models.Interaction{
		UserID:    actor.ID,
		ContentID: item.ID,
		Type:      enums.InteractionTypeBoost,
	})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, models.UniqueInteractionConstraint))

	// Same tuple with a different type is a new ledger row.
	_, err = repo.Insert(ctx, &models.Interaction{
		UserID:    actor.ID,
		ContentID: item.ID,
		Type:      enums.InteractionTypeResonance,
	})
	require.NoError(t, err)
}

func TestRepositoryIncrementCounterPerType(t *testing.T) {
	conn := setupInteractionsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	actor := seedActor(t, conn, "mover")
	item := seedContent(t, conn, actor.ID)

	require.NoError(t, repo.IncrementCounter(ctx, item.ID, enums.InteractionTypeBoost))
	require.NoError(t, repo.IncrementCounter(ctx, item.ID, enums.InteractionTypeBoost))
	require.NoError(t, repo.IncrementCounter(ctx, item.ID, enums.InteractionTypeAmplify))

	boosts, resonance, amplify := contentCounters(t, conn, item.ID)
	assert.Equal(t, 2, boosts)
	assert.Equal(t, 0, resonance)
	assert.Equal(t, 1, amplify)

	err := repo.IncrementCounter(ctx, uuid.New(), enums.InteractionTypeBoost)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryTransactionRollbackLeavesNoPartialWrite(t *testing.T) {
	conn := setupInteractionsTestDB(t)
	repo := NewRepository(conn)
	client := db.NewWithConn(conn)
	ctx := context.Background()

	actor := seedActor(t, conn, "ghost")
	item := seedContent(t, conn, actor.ID)

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)
		if _, err := txRepo.Insert(ctx, &models.Interaction{
			UserID:    actor.ID,
			ContentID: item.ID,
			Type:      enums.InteractionTypeBoost,
		}); err != nil {
			return err
		}
		// Counter update targets a missing row; the whole write must roll back.
		return txRepo.IncrementCounter(ctx, uuid.New(), enums.InteractionTypeBoost)
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, conn.Model(&models.Interaction{}).Count(&count).Error)
	assert.Zero(t, count)

	boosts, _, _ := contentCounters(t, conn, item.ID)
	assert.Zero(t, boosts)
}

func TestRepositoryListByContentOrderAndPaging(t *testing.T) {
	conn := setupInteractionsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	owner := seedActor(t, conn, "owner")
	item := seedContent(t, conn, owner.ID)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		actor := seedActor(t, conn, "actor"+string(rune('a'+i)))
		require.NoError(t, conn.Create(&models.Interaction{
			ID:          uuid.New(),
			UserID:      actor.ID,
			ContentID:   item.ID,
			Type:        enums.InteractionTypeBoost,
			EnergyValue: 1,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	first, cursor, err := repo.ListByContent(ctx, item.ID, "", 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotEmpty(t, cursor)
	assert.True(t, first[0].CreatedAt.After(first[1].CreatedAt))

	rest, last, err := repo.ListByContent(ctx, item.ID, cursor, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Empty(t, last)
}

func TestRepositoryActorStateHelpers(t *testing.T) {
	conn := setupInteractionsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	actor := seedActor(t, conn, "busy")
	other := seedActor(t, conn, "idle")
	item := seedContent(t, conn, actor.ID)

	for _, it := range []enums.InteractionType{enums.InteractionTypeBoost, enums.InteractionTypeResonance} {
		require.NoError(t, conn.Create(&models.Interaction{
			ID:          uuid.New(),
			UserID:      actor.ID,
			ContentID:   item.ID,
			Type:        it,
			EnergyValue: 1,
			CreatedAt:   time.Now().UTC(),
		}).Error)
	}

	types, err := repo.ListActorTypes(ctx, actor.ID, item.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []enums.InteractionType{enums.InteractionTypeBoost, enums.InteractionTypeResonance}, types)

	none, err := repo.ListActorTypes(ctx, other.ID, item.ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	has, err := repo.HasInteracted(ctx, actor.ID, item.ID, enums.InteractionTypeBoost)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = repo.HasInteracted(ctx, actor.ID, item.ID, enums.InteractionTypeAmplify)
	require.NoError(t, err)
	assert.False(t, has)
}
