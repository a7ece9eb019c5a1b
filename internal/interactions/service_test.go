package interactions

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/internal/content"
	"github.com/plasma-social/plasma-backend/internal/users"
	"github.com/plasma-social/plasma-backend/pkg/db"
	"github.com/plasma-social/plasma-backend/pkg/enums"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
	"github.com/plasma-social/plasma-backend/pkg/logger"
	"github.com/plasma-social/plasma-backend/pkg/metrics"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := setupInteractionsTestDB(t)
	svc, err := NewService(ServiceParams{
		InteractionRepo: NewRepository(conn),
		ContentRepo:     content.NewRepository(conn),
		UserRepo:        users.NewRepository(conn),
		DBClient:        db.NewWithConn(conn),
		Logger:          logger.New(logger.Options{ServiceName: "interactions-test", Output: io.Discard}),
		Metrics:         metrics.NewInteractionMetrics(prometheus.NewRegistry()),
	})
	require.NoError(t, err)
	return svc, conn
}

func TestServiceRecordMovesExactlyOneCounter(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	actor := seedActor(t, conn, "fan")
	item := seedContent(t, conn, actor.ID)

	recorded, err := svc.Record(ctx, RecordInteractionInput{
		UserID:    actor.ID,
		ContentID: item.ID,
		Type:      "resonance",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.InteractionTypeResonance, recorded.Type)
	assert.Equal(t, 1, recorded.EnergyValue)

	boosts, resonance, amplify := contentCounters(t, conn, item.ID)
	assert.Equal(t, 0, boosts)
	assert.Equal(t, 1, resonance)
	assert.Equal(t, 0, amplify)
}

func TestServiceRecordDuplicateConflictKeepsCounter(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	actor := seedActor(t, conn, "repeat")
	item := seedContent(t, conn, actor.ID)

	_, err := svc.Record(ctx, RecordInteractionInput{
		UserID:    actor.ID,
		ContentID: item.ID,
		Type:      "boost",
	})
	require.NoError(t, err)

	_, err = svc.Record(ctx, RecordInteractionInput{
		UserID:    actor.ID,
		ContentID: item.ID,
		Type:      "boost",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	// The rejected write must not touch the tally.
	boosts, _, _ := contentCounters(t, conn, item.ID)
	assert.Equal(t, 1, boosts)
}

func TestServiceRecordDistinctActorsAndTypes(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	alice := seedActor(t, conn, "alice")
	bob := seedActor(t, conn, "bob")
	item := seedContent(t, conn, alice.ID)

	// Same actor, different types.
	for _, it := range []string{"boost", "resonance", "amplify"} {
		_, err := svc.Record(ctx, RecordInteractionInput{UserID: alice.ID, ContentID: item.ID, Type: it})
		require.NoError(t, err)
	}
	// Different actor, same type.
	_, err := svc.Record(ctx, RecordInteractionInput{UserID: bob.ID, ContentID: item.ID, Type: "boost"})
	require.NoError(t, err)

	boosts, resonance, amplify := contentCounters(t, conn, item.ID)
	assert.Equal(t, 2, boosts)
	assert.Equal(t, 1, resonance)
	assert.Equal(t, 1, amplify)
}

func TestServiceRecordCustomEnergyValue(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	actor := seedActor(t, conn, "charged")
	item := seedContent(t, conn, actor.ID)

	recorded, err := svc.Record(ctx, RecordInteractionInput{
		UserID:      actor.ID,
		ContentID:   item.ID,
		Type:        "boost",
		EnergyValue: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, recorded.EnergyValue)

	// The counter still moves by exactly one regardless of energy value.
	boosts, _, _ := contentCounters(t, conn, item.ID)
	assert.Equal(t, 1, boosts)
}

func TestServiceRecordValidation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	actor := seedActor(t, conn, "checker")
	item := seedContent(t, conn, actor.ID)

	cases := []struct {
		name  string
		input RecordInteractionInput
		code  pkgerrors.Code
	}{
		{"unknown type", RecordInteractionInput{UserID: actor.ID, ContentID: item.ID, Type: "superlike"}, pkgerrors.CodeValidation},
		{"negative energy", RecordInteractionInput{UserID: actor.ID, ContentID: item.ID, Type: "boost", EnergyValue: -2}, pkgerrors.CodeValidation},
		{"missing user", RecordInteractionInput{ContentID: item.ID, Type: "boost"}, pkgerrors.CodeValidation},
		{"missing content", RecordInteractionInput{UserID: actor.ID, Type: "boost"}, pkgerrors.CodeValidation},
		{"unknown user", RecordInteractionInput{UserID: uuid.New(), ContentID: item.ID, Type: "boost"}, pkgerrors.CodeNotFound},
		{"unknown content", RecordInteractionInput{UserID: actor.ID, ContentID: uuid.New(), Type: "boost"}, pkgerrors.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(ctx, tc.input)
			require.Error(t, err)
			assert.Equal(t, tc.code, pkgerrors.As(err).Code())
		})
	}

	var count int64
	require.NoError(t, conn.Table("interactions").Count(&count).Error)
	assert.Zero(t, count)
}

func TestServiceActorState(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	actor := seedActor(t, conn, "stateful")
	item := seedContent(t, conn, actor.ID)

	_, err := svc.Record(ctx, RecordInteractionInput{UserID: actor.ID, ContentID: item.ID, Type: "amplify"})
	require.NoError(t, err)

	state, err := svc.ActorState(ctx, actor.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, []enums.InteractionType{enums.InteractionTypeAmplify}, state.Types)

	_, err = svc.ActorState(ctx, uuid.Nil, item.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestServiceListByContent(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	actor := seedActor(t, conn, "lister")
	other := seedActor(t, conn, "second")
	item := seedContent(t, conn, actor.ID)

	for _, u := range []uuid.UUID{actor.ID, other.ID} {
		_, err := svc.Record(ctx, RecordInteractionInput{UserID: u, ContentID: item.ID, Type: "boost"})
		require.NoError(t, err)
	}

	page, err := svc.ListByContent(ctx, item.ID, "", 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Empty(t, page.NextCursor)
}

func TestServiceHasInteracted(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	actor := seedActor(t, conn, "checker")
	item := seedContent(t, conn, actor.ID)

	_, err := svc.Record(ctx, RecordInteractionInput{UserID: actor.ID, ContentID: item.ID, Type: "boost"})
	require.NoError(t, err)

	got, err := svc.HasInteracted(ctx, actor.ID, item.ID, "boost")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = svc.HasInteracted(ctx, actor.ID, item.ID, "resonance")
	require.NoError(t, err)
	assert.False(t, got)

	_, err = svc.HasInteracted(ctx, actor.ID, item.ID, "applause")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.HasInteracted(ctx, uuid.Nil, item.ID, "boost")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
