package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpull/taskpull-cli/internal/core/domain"
)

func TestTaskStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		store := NewTaskStore()
		record := &domain.TaskRecord{Key: "k1", SourceID: "src-1", Title: "one"}
		require.NoError(t, store.Save(ctx, record))

		got, err := store.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, "one", got.Title)
	})

	t.Run("get unknown key fails", func(t *testing.T) {
		store := NewTaskStore()
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("same key upserts", func(t *testing.T) {
		store := NewTaskStore()
		require.NoError(t, store.Save(ctx, &domain.TaskRecord{Key: "k1", Title: "old"}))
		require.NoError(t, store.Save(ctx, &domain.TaskRecord{Key: "k1", Title: "new"}))

		assert.Equal(t, 1, store.Len())
		got, err := store.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, "new", got.Title)
	})

	t.Run("list filters by source", func(t *testing.T) {
		store := NewTaskStore()
		require.NoError(t, store.Save(ctx, &domain.TaskRecord{Key: "k1", SourceID: "a"}))
		require.NoError(t, store.Save(ctx, &domain.TaskRecord{Key: "k2", SourceID: "a"}))
		require.NoError(t, store.Save(ctx, &domain.TaskRecord{Key: "k3", SourceID: "b"}))

		records, err := store.List(ctx, "a")
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}
