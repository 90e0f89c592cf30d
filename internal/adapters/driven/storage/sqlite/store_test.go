package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store, dir
}

func comment(id, app, text string, at time.Time) domain.Comment {
	return domain.Comment{ID: id, ApplicationID: app, Text: text, Reviewer: "Reviewer 0A1B2C3D", CreatedAt: at}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, dir := setupTestStore(t)

	assert.Equal(t, filepath.Join(dir, DBFile), store.Path())
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)

	v, err := store.version()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	v, err := second.version()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestNewStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	garbage := make([]byte, 4096)
	for i := range garbage {
		garbage[i] = byte('x')
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, DBFile), garbage, 0600))

	store, err := NewStore(dir)
	assert.ErrorIs(t, err, domain.ErrStorageCorrupt)
	assert.Nil(t, store)
}

func TestNewStore_MkdirError(t *testing.T) {
	_, err := NewStore("/dev/null/cannot/create")
	assert.Error(t, err)
}

func TestCommentStore_AppendAndList(t *testing.T) {
	store, _ := setupTestStore(t)
	comments := store.CommentStore()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 30, 0, 123456789, time.UTC)

	require.NoError(t, comments.Append(ctx, comment("c1", "BHAR-1", "first", base)))
	require.NoError(t, comments.Append(ctx, comment("c2", "BHAR-2", "other", base.Add(time.Minute))))
	require.NoError(t, comments.Append(ctx, comment("c3", "BHAR-1", "second", base.Add(2*time.Minute))))

	list, err := comments.List(ctx, "BHAR-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Text)
	assert.Equal(t, "second", list[1].Text)
	assert.True(t, base.Equal(list[0].CreatedAt))
	assert.Equal(t, "Reviewer 0A1B2C3D", list[0].Reviewer)

	empty, err := comments.List(ctx, "BHAR-404")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCommentStore_All(t *testing.T) {
	store, _ := setupTestStore(t)
	comments := store.CommentStore()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, comments.Append(ctx, comment("c1", "A", "x", now)))
	require.NoError(t, comments.Append(ctx, comment("c2", "B", "y", now)))
	require.NoError(t, comments.Append(ctx, comment("c3", "A", "z", now)))

	all, err := comments.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Len(t, all["A"], 2)
	assert.Equal(t, "z", all["A"][1].Text)
	assert.Len(t, all["B"], 1)
}

func TestCommentStore_DuplicateID(t *testing.T) {
	store, _ := setupTestStore(t)
	comments := store.CommentStore()
	ctx := context.Background()

	require.NoError(t, comments.Append(ctx, comment("c1", "A", "x", time.Now())))
	assert.Error(t, comments.Append(ctx, comment("c1", "A", "again", time.Now())))
}

func TestCommentStore_RejectsBlankText(t *testing.T) {
	store, _ := setupTestStore(t)
	err := store.CommentStore().Append(context.Background(), comment("c1", "A", "   ", time.Now()))
	assert.Error(t, err)
}

func TestCommentStore_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.CommentStore().Append(ctx, comment("c1", "BHAR-7", "keep me", time.Now())))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	list, err := second.CommentStore().List(ctx, "BHAR-7")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "keep me", list[0].Text)
}

func TestMigrate_SkipsUnversionedFiles(t *testing.T) {
	store, _ := setupTestStore(t)

	fsys := fstest.MapFS{
		"README.up.sql":      {Data: []byte("THIS IS NOT SQL")},
		"002_extra.up.sql":   {Data: []byte("CREATE TABLE extra (id INTEGER);")},
		"002_extra.down.sql": {Data: []byte("DROP TABLE extra;")},
	}
	require.NoError(t, store.migrate(fsys))

	v, err := store.version()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestMigrate_FailedMigrationRollsBack(t *testing.T) {
	store, _ := setupTestStore(t)

	fsys := fstest.MapFS{
		"003_broken.up.sql": {Data: []byte("CREATE TABLE ok (id INTEGER); NOT SQL;")},
	}
	assert.Error(t, store.migrate(fsys))

	v, err := store.version()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}
