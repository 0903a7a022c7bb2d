package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"feedback-portal/internal/database"
	"feedback-portal/internal/models"
)

func setupMongo(t *testing.T) *database.Mongo {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err, "failed to start mongodb container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate mongodb container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := database.Connect(ctx, uri, "feedback_test", 10*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(context.Background()) })
	return db
}

func TestFeedbackRepo_Integration(t *testing.T) {
	db := setupMongo(t)

	runStoreContract(t, func(t *testing.T) FeedbackStore {
		repo := NewFeedbackRepo(db)
		ctx := context.Background()
		_, err := repo.collection.DeleteMany(ctx, map[string]any{})
		require.NoError(t, err)
		require.NoError(t, repo.EnsureIndexes(ctx))
		return repo
	})
}

func TestFeedbackRepo_AdditionalDataKeepsKeyOrder(t *testing.T) {
	db := setupMongo(t)
	repo := NewFeedbackRepo(db)
	ctx := context.Background()

	f := newTestFeedback("ordered", models.CategoryProduct, 5)
	f.AdditionalData = models.AdditionalData(`{"zeta":"z","alpha":{"b":true,"a":false}}`)
	require.NoError(t, repo.Insert(ctx, f))

	all, err := repo.FindAll(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, `{"zeta":"z","alpha":{"b":true,"a":false}}`, string(all[0].AdditionalData.Bytes()))
}
