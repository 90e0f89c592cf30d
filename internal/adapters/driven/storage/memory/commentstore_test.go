package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

func TestCommentStore_AppendAndList(t *testing.T) {
	store := NewCommentStore()
	ctx := context.Background()

	list, err := store.List(ctx, "BHAR-1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	now := time.Now()
	require.NoError(t, store.Append(ctx, domain.Comment{ID: "c1", ApplicationID: "BHAR-1", Text: "first", CreatedAt: now}))
	require.NoError(t, store.Append(ctx, domain.Comment{ID: "c2", ApplicationID: "BHAR-1", Text: "second", CreatedAt: now}))
	require.NoError(t, store.Append(ctx, domain.Comment{ID: "c3", ApplicationID: "BHAR-2", Text: "other", CreatedAt: now}))

	list, err = store.List(ctx, "BHAR-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Text)
	assert.Equal(t, "second", list[1].Text)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Len(t, all["BHAR-2"], 1)
}

func TestCommentStore_ListIsACopy(t *testing.T) {
	store := NewCommentStore()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, domain.Comment{ID: "c1", ApplicationID: "A", Text: "x"}))

	list, err := store.List(ctx, "A")
	require.NoError(t, err)
	list[0].Text = "mutated"

	again, err := store.List(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "x", again[0].Text)
}
