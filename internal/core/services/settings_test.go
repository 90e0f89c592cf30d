package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/appreview/internal/core/domain"
)

func TestSettingsService_GetDefaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, svc.GetDefaults().Dataset, settings.Dataset)
	assert.Equal(t, domain.CommentBackendSQLite, settings.CommentBackend)
	assert.Equal(t, domain.ViewModeGrid, settings.ViewMode)
	assert.Equal(t, domain.DefaultServerAddr, settings.Server.Addr)
}

func TestSettingsService_GetFromConfig(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"dataset.path":              "/data/apps.json",
		"dataset.url":               "https://example.org/apps.json",
		"comments.backend":          "file",
		"view.mode":                 "list",
		"access.documents_password": "secret",
	})
	svc := NewSettingsService(store)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "/data/apps.json", settings.Dataset.Path)
	assert.Equal(t, "https://example.org/apps.json", settings.Dataset.URL)
	assert.Equal(t, domain.CommentBackendFile, settings.CommentBackend)
	assert.Equal(t, domain.ViewModeList, settings.ViewMode)
	assert.Equal(t, "secret", settings.Access.DocumentsPassword)
	assert.Equal(t, domain.DefaultExtendedPassword, settings.Access.ExtendedPassword)
}

func TestSettingsService_InvalidValuesFallBack(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"comments.backend": "postgres",
		"view.mode":        "table",
	})
	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)
	assert.Equal(t, domain.CommentBackendSQLite, settings.CommentBackend)
	assert.Equal(t, domain.ViewModeGrid, settings.ViewMode)
}

func TestSettingsService_SetViewMode(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)

	require.NoError(t, svc.SetViewMode(domain.ViewModeList))
	assert.Equal(t, "list", store.GetString("view.mode"))

	err := svc.SetViewMode(domain.ViewMode("table"))
	assert.ErrorIs(t, err, domain.ErrUnknownViewMode)
}

func TestSettingsService_SetCommentBackend(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)

	require.NoError(t, svc.SetCommentBackend(domain.CommentBackendFile))
	assert.Equal(t, "file", store.GetString("comments.backend"))
	assert.ErrorIs(t, svc.SetCommentBackend("redis"), domain.ErrInvalidInput)
}

func TestSettingsService_SetDatasetPath(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)

	require.NoError(t, svc.SetDatasetPath(domain.CollectionShortlisted, "a.json"))
	require.NoError(t, svc.SetDatasetPath(domain.CollectionAll, "b.json"))
	assert.Equal(t, "a.json", store.GetString("dataset.path"))
	assert.Equal(t, "b.json", store.GetString("dataset.extended_path"))

	assert.ErrorIs(t, svc.SetDatasetPath(domain.CollectionAll, ""), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.SetDatasetPath("archive", "c.json"), domain.ErrInvalidInput)
}

func TestSettingsService_SetGatePassword(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)

	require.NoError(t, svc.SetGatePassword(domain.GateExtended, "open-sesame"))
	assert.Equal(t, "open-sesame", store.GetString("access.extended_password"))
	assert.ErrorIs(t, svc.SetGatePassword("vault", "x"), domain.ErrUnknownGate)
	assert.ErrorIs(t, svc.SetGatePassword(domain.GateDocuments, ""), domain.ErrInvalidInput)
}

func TestSettingsService_RefreshInterval(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Zero(t, settings.Server.RefreshInterval)

	require.NoError(t, svc.SetRefreshInterval(90*time.Second))
	assert.Equal(t, "1m30s", store.GetString("server.refresh_interval"))

	settings, err = svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, settings.Server.RefreshInterval)

	assert.ErrorIs(t, svc.SetRefreshInterval(-time.Second), domain.ErrInvalidInput)

	require.NoError(t, store.Set("server.refresh_interval", "soon"))
	settings, err = svc.Get()
	require.NoError(t, err)
	assert.Zero(t, settings.Server.RefreshInterval)
}

func TestSettingsService_ReviewerLabel(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)

	label := svc.ReviewerLabel()
	assert.True(t, strings.HasPrefix(label, domain.ReviewerLabelPrefix))
	assert.Len(t, label, len(domain.ReviewerLabelPrefix)+8)
	assert.Equal(t, label, store.GetString("reviewer.label"))
	assert.Equal(t, label, svc.ReviewerLabel(), "label must be stable")
}

func TestSettingsService_ReviewerLabelPersistFailure(t *testing.T) {
	store := memory.NewConfigStore()
	store.SetErr = errors.New("read-only")
	svc := NewSettingsService(store)

	assert.NotEmpty(t, svc.ReviewerLabel())
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)

	settings := svc.GetDefaults()
	settings.ViewMode = domain.ViewModeList
	settings.ReviewerLabel = "Reviewer ABC"
	settings.Server.Addr = ":9000"
	settings.Server.RefreshInterval = 15 * time.Minute
	require.NoError(t, svc.Save(&settings))

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)

	assert.ErrorIs(t, svc.Save(nil), domain.ErrInvalidInput)
}

func TestSettingsService_SaveError(t *testing.T) {
	store := memory.NewConfigStore()
	store.SetErr = errors.New("read-only")
	settings := domain.DefaultPortalSettings()

	err := NewSettingsService(store).Save(&settings)
	assert.Error(t, err)
}
