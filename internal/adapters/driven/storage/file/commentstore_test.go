package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

func comment(id, app, text string) domain.Comment {
	return domain.Comment{
		ID:            id,
		ApplicationID: app,
		Text:          text,
		Reviewer:      "Reviewer 12345678",
		CreatedAt:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNewCommentStore_MissingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	store, err := NewCommentStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), store.Path())

	all, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCommentStore_AppendWritesWholeMapping(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCommentStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, comment("c1", "BHAR-1", "first")))
	require.NoError(t, store.Append(ctx, comment("c2", "BHAR-2", "other")))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var onDisk map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &onDisk))
	require.Len(t, onDisk, 2)
	assert.Equal(t, "first", onDisk["BHAR-1"][0]["text"])
	assert.Equal(t, "2024-01-02T03:04:05Z", onDisk["BHAR-1"][0]["timestamp"])
	assert.Equal(t, "BHAR-2", onDisk["BHAR-2"][0]["applicationId"])
}

func TestCommentStore_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewCommentStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Append(ctx, comment("c1", "BHAR-1", "one")))
	require.NoError(t, first.Append(ctx, comment("c2", "BHAR-1", "two")))

	second, err := NewCommentStore(dir)
	require.NoError(t, err)

	list, err := second.List(ctx, "BHAR-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Text)
	assert.Equal(t, "two", list[1].Text)
	assert.Equal(t, comment("c2", "BHAR-1", "two"), list[1])
}

func TestNewCommentStore_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0600))

	store, err := NewCommentStore(dir)
	require.NoError(t, err)

	all, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	// The next append replaces the corrupt file.
	require.NoError(t, store.Append(context.Background(), comment("c1", "A", "x")))
	reopened, err := NewCommentStore(dir)
	require.NoError(t, err)
	list, err := reopened.List(context.Background(), "A")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCommentStore_NullFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("null"), 0600))

	store, err := NewCommentStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), comment("c1", "A", "x")))
}

func TestCommentStore_FailedWriteLeavesStateUnchanged(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCommentStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, comment("c1", "A", "kept")))

	// A directory in place of the temp file makes the write fail.
	require.NoError(t, os.Mkdir(store.Path()+".tmp", 0700))

	assert.Error(t, store.Append(ctx, comment("c2", "A", "lost")))
	assert.Error(t, store.Append(ctx, comment("c3", "B", "lost")))

	list, err := store.List(ctx, "A")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "kept", list[0].Text)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.NotContains(t, all, "B")
}

func TestCommentStore_ListReturnsCopies(t *testing.T) {
	store, err := NewCommentStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, comment("c1", "A", "x")))

	list, err := store.List(ctx, "A")
	require.NoError(t, err)
	list[0].Text = "mutated"

	again, err := store.List(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "x", again[0].Text)
}

func TestNewCommentStore_MkdirError(t *testing.T) {
	_, err := NewCommentStore("/dev/null/cannot")
	assert.Error(t, err)
}
