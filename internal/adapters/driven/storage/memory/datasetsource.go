package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driven"
)

// Ensure DatasetSource implements the interface.
var _ driven.DatasetSource = (*DatasetSource)(nil)

// DatasetSource serves collections from memory.
type DatasetSource struct {
	mu          sync.RWMutex
	collections map[domain.Collection][]map[string]any
	errs        map[domain.Collection]error

	// Gate, when non-nil, is waited on by Fetch before returning.
	Gate chan struct{}
}

// NewDatasetSource creates a dataset source with no collections.
func NewDatasetSource() *DatasetSource {
	return &DatasetSource{
		collections: make(map[domain.Collection][]map[string]any),
		errs:        make(map[domain.Collection]error),
	}
}

// Put sets the raw records of a collection.
func (s *DatasetSource) Put(c domain.Collection, records ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[c] = records
	delete(s.errs, c)
}

// Fail makes the next fetches of a collection return err.
func (s *DatasetSource) Fail(c domain.Collection, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[c] = err
}

// Fetch returns copies of the stored records.
func (s *DatasetSource) Fetch(ctx context.Context, c domain.Collection) ([]map[string]any, error) {
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.errs[c]; err != nil {
		return nil, err
	}
	records, ok := s.collections[c]
	if !ok {
		return nil, fmt.Errorf("%w: collection %s not found", domain.ErrDatasetUnavailable, c)
	}
	out := make([]map[string]any, len(records))
	for i, r := range records {
		out[i] = maps.Clone(r)
	}
	return out, nil
}

// Describe returns where the collection is read from.
func (s *DatasetSource) Describe(c domain.Collection) string {
	return "memory:" + c.String()
}
