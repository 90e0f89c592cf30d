package logger

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// capture redirects output to a buffer for the duration of the test.
func capture(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func()
		want    string
	}{
		{
			name:    "debug when verbose",
			verbose: true,
			log:     func() { Debug("loaded %d records", 22) },
			want:    "[DEBUG] loaded 22 records\n",
		},
		{
			name:    "debug when quiet",
			verbose: false,
			log:     func() { Debug("loaded %d records", 22) },
			want:    "",
		},
		{
			name:    "info",
			verbose: true,
			log:     func() { Info("collection %s ready", "shortlisted") },
			want:    "[INFO] collection shortlisted ready\n",
		},
		{
			name:    "warn",
			verbose: true,
			log:     func() { Warn("skipping record without id") },
			want:    "[WARN] skipping record without id\n",
		},
		{
			name:    "warn when quiet",
			verbose: false,
			log:     func() { Warn("skipping record without id") },
			want:    "",
		},
		{
			name:    "error always printed",
			verbose: false,
			log: func() {
				Info("hidden")
				Error("dataset unavailable: %s", "timeout")
			},
			want: "[ERROR] dataset unavailable: timeout\n",
		},
		{
			name:    "section when verbose",
			verbose: true,
			log:     func() { Section("Load") },
			want:    "\n=== Load ===\n",
		},
		{
			name:    "section when quiet",
			verbose: false,
			log:     func() { Section("Load") },
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.verbose)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestL_StructuredFields(t *testing.T) {
	buf := capture(t, true)

	L().Info("request", zap.String("path", "/BHAR-00001"))

	out := buf.String()
	assert.Contains(t, out, "[INFO] request")
	assert.Contains(t, out, `"path": "/BHAR-00001"`)
}

func TestConcurrentAccess(t *testing.T) {
	SetOutput(io.Discard)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(i%2 == 0)
			Debug("worker %d", i)
			_ = IsVerbose()
		}()
	}
	wg.Wait()
}
