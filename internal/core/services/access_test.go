package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/appreview/internal/core/domain"
)

func TestAccessService_DefaultPasswords(t *testing.T) {
	svc := NewAccessService(NewSettingsService(memory.NewConfigStore()))

	assert.NoError(t, svc.Check(domain.GateExtended, domain.DefaultExtendedPassword))
	assert.NoError(t, svc.Check(domain.GateDocuments, domain.DefaultDocumentsPassword))
	assert.ErrorIs(t, svc.Check(domain.GateExtended, "wrong"), domain.ErrAccessDenied)
	assert.ErrorIs(t, svc.Check(domain.GateDocuments, ""), domain.ErrAccessDenied)
	assert.ErrorIs(t, svc.Check("vault", "x"), domain.ErrUnknownGate)
}

func TestAccessService_ConfiguredPassword(t *testing.T) {
	settings := NewSettingsService(memory.NewConfigStore())
	svc := NewAccessService(settings)

	require.NoError(t, settings.SetGatePassword(domain.GateDocuments, "papers"))
	assert.NoError(t, svc.Check(domain.GateDocuments, "papers"))
	assert.ErrorIs(t, svc.Check(domain.GateDocuments, domain.DefaultDocumentsPassword), domain.ErrAccessDenied)
}

func TestAccessService_UnlockAndLock(t *testing.T) {
	svc := NewAccessService(nil)

	assert.False(t, svc.IsUnlocked(domain.GateExtended))
	assert.Error(t, svc.Unlock(domain.GateExtended, "nope"))
	assert.False(t, svc.IsUnlocked(domain.GateExtended))

	require.NoError(t, svc.Unlock(domain.GateExtended, domain.DefaultExtendedPassword))
	assert.True(t, svc.IsUnlocked(domain.GateExtended))
	assert.False(t, svc.IsUnlocked(domain.GateDocuments))

	svc.Lock(domain.GateExtended)
	assert.False(t, svc.IsUnlocked(domain.GateExtended))
}
