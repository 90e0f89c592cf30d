package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driven"
	"github.com/custodia-labs/appreview/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DatasetSource = (*Source)(nil)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second

	// MaxPayloadBytes caps a single dataset payload.
	MaxPayloadBytes = 256 << 20
)

//go:embed schema.json
var schemaJSON []byte

var schema = gojsonschema.NewBytesLoader(schemaJSON)

// nonFinite lists the bare tokens the spreadsheet export writes for
// missing numbers, longest first.
var nonFinite = [][]byte{[]byte("-Infinity"), []byte("Infinity"), []byte("NaN")}

// Config holds configuration for the dataset source.
type Config struct {
	// Dataset holds the per-collection paths and URLs. A URL wins over a path.
	Dataset domain.DatasetSettings

	// BaseDir resolves relative paths (default: working directory).
	BaseDir string

	// Timeout is the HTTP request timeout (default: 30s).
	Timeout time.Duration

	// Client overrides the HTTP client.
	Client *http.Client
}

// Source reads collections from files or URLs.
type Source struct {
	client   *http.Client
	baseDir  string
	settings domain.DatasetSettings
}

// NewSource creates a new dataset source.
func NewSource(cfg Config) *Source {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Source{
		client:   client,
		baseDir:  cfg.BaseDir,
		settings: cfg.Dataset,
	}
}

// location returns where a collection is read from and whether it is a URL.
func (s *Source) location(c domain.Collection) (string, bool) {
	var path, url string
	switch c {
	case domain.CollectionAll:
		path, url = s.settings.ExtendedPath, s.settings.ExtendedURL
	default:
		path, url = s.settings.Path, s.settings.URL
	}
	if url != "" {
		return url, true
	}
	if path != "" && !filepath.IsAbs(path) && s.baseDir != "" {
		path = filepath.Join(s.baseDir, path)
	}
	return path, false
}

// Describe returns the path or URL of a collection.
func (s *Source) Describe(c domain.Collection) string {
	loc, _ := s.location(c)
	return loc
}

// Fetch reads, validates and decodes a collection.
func (s *Source) Fetch(ctx context.Context, c domain.Collection) ([]map[string]any, error) {
	loc, remote := s.location(c)
	if loc == "" {
		return nil, fmt.Errorf("%w: no path or url for %s", domain.ErrDatasetUnavailable, c)
	}

	var (
		data []byte
		err  error
	)
	if remote {
		data, err = s.get(ctx, loc)
	} else {
		data, err = readFile(loc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatasetUnavailable, err)
	}

	records, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDatasetUnavailable, loc, err)
	}
	logger.Debug("fetched %d raw records from %s", len(records), loc)
	return records, nil
}

func (s *Source) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Decode sanitises, validates and decodes a dataset payload.
func Decode(data []byte) ([]map[string]any, error) {
	clean := Sanitise(data)

	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(clean))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("schema validation failed: %s", strings.Join(errs, "; "))
	}

	var records []map[string]any
	if err := json.Unmarshal(clean, &records); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return records, nil
}

// Sanitise replaces bare NaN and Infinity values with null. Text inside
// string literals is copied unchanged.
func Sanitise(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			switch c {
			case '\\':
				if i+1 < len(data) {
					i++
					out = append(out, data[i])
				}
			case '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}
		if tok := nonFiniteAt(data[i:]); tok > 0 {
			out = append(out, "null"...)
			i += tok - 1
			continue
		}
		out = append(out, c)
	}
	return out
}

// nonFiniteAt returns the length of the non-finite token at the start of b,
// or 0.
func nonFiniteAt(b []byte) int {
	for _, tok := range nonFinite {
		if bytes.HasPrefix(b, tok) {
			return len(tok)
		}
	}
	return 0
}
