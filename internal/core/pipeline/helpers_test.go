package pipeline

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

// record decodes a JSON object into a domain record.
func record(t *testing.T, js string) domain.Record {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &raw))
	r, err := domain.NewRecord(raw)
	require.NoError(t, err)
	return r
}

// legacy builds a legacy record from fields.
func legacy(t *testing.T, id string, fields map[string]any) domain.Record {
	t.Helper()
	raw := map[string]any{"ApplicationId": id}
	for k, v := range fields {
		raw[k] = v
	}
	r, err := domain.NewRecord(raw)
	require.NoError(t, err)
	return r
}

func ids(records []domain.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ApplicationID()
	}
	return out
}

func numbered(t *testing.T, n int) []domain.Record {
	t.Helper()
	out := make([]domain.Record, n)
	for i := range out {
		out[i] = legacy(t, fmt.Sprintf("BHAR-%05d", i+1), nil)
	}
	return out
}
