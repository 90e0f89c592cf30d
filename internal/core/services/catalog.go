package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/pipeline"
	"github.com/custodia-labs/appreview/internal/core/ports/driven"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
	"github.com/custodia-labs/appreview/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// collectionState holds one loaded collection.
// records and index are replaced wholesale and never mutated afterwards.
type collectionState struct {
	records  []domain.Record
	index    map[string]domain.Record
	status   domain.LoadStatus
	done     chan struct{}
	finished bool
}

// CatalogService loads collections from a dataset source and serves
// browse requests over them. Load is the only writer; everything else reads.
type CatalogService struct {
	source driven.DatasetSource

	// loadMu serialises loads so each collection has a single writer.
	loadMu sync.Mutex

	mu          sync.RWMutex
	collections map[domain.Collection]*collectionState
	waitTimeout time.Duration
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(source driven.DatasetSource) *CatalogService {
	return &CatalogService{
		source:      source,
		collections: make(map[domain.Collection]*collectionState),
		waitTimeout: domain.LoadWaitTimeout,
	}
}

// SetWaitTimeout overrides how long WaitLoaded blocks.
func (s *CatalogService) SetWaitTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waitTimeout = d
}

// stateLocked returns the state for a collection, creating it when needed.
// The caller must hold s.mu for writing.
func (s *CatalogService) stateLocked(c domain.Collection) *collectionState {
	st, ok := s.collections[c]
	if !ok {
		st = &collectionState{
			done:   make(chan struct{}),
			status: domain.LoadStatus{Collection: c, State: domain.LoadIdle, StateName: domain.LoadIdle.String()},
		}
		s.collections[c] = st
	}
	return st
}

// Load fetches and decodes a collection, replacing any previous copy.
// Records without an ApplicationId and repeated ids are skipped with a
// warning; the first occurrence of an id wins.
func (s *CatalogService) Load(ctx context.Context, c domain.Collection) (domain.LoadStatus, error) {
	if !c.IsValid() {
		return domain.LoadStatus{}, fmt.Errorf("%w: unknown collection %q", domain.ErrInvalidInput, c)
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	source := ""
	if s.source != nil {
		source = s.source.Describe(c)
	}

	s.mu.Lock()
	st := s.stateLocked(c)
	if st.finished {
		st.done = make(chan struct{})
		st.finished = false
	}
	st.status = domain.LoadStatus{
		Collection: c,
		State:      domain.LoadLoading,
		StateName:  domain.LoadLoading.String(),
		Source:     source,
	}
	s.mu.Unlock()

	logger.Section("Load " + c.String())
	logger.Debug("source: %s", source)

	records, index, skipped, err := s.fetch(ctx, c)

	status := domain.LoadStatus{
		Collection: c,
		Count:      len(records),
		Skipped:    skipped,
		Source:     source,
		LoadedAt:   time.Now(),
	}
	if err != nil {
		status.State = domain.LoadFailed
		status.Err = err
		records, index = nil, nil
		logger.Error("load %s: %v", c, err)
	} else {
		status.State = domain.LoadReady
		logger.Info("loaded %d records (%d skipped)", len(records), skipped)
	}
	status.StateName = status.State.String()

	s.mu.Lock()
	st.records = records
	st.index = index
	st.status = status
	st.finished = true
	close(st.done)
	s.mu.Unlock()

	return status, err
}

// Reload refreshes a ready collection. Unlike Load, a failed fetch keeps the
// previous copy and its status; the error is returned for logging.
// A collection that is not ready is loaded normally.
func (s *CatalogService) Reload(ctx context.Context, c domain.Collection) (domain.LoadStatus, error) {
	if s.Status(c).State != domain.LoadReady {
		return s.Load(ctx, c)
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	records, index, skipped, err := s.fetch(ctx, c)
	if err != nil {
		logger.Warn("reload %s: %v; keeping previous copy", c, err)
		return s.Status(c), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateLocked(c)
	st.records = records
	st.index = index
	st.status = domain.LoadStatus{
		Collection: c,
		State:      domain.LoadReady,
		StateName:  domain.LoadReady.String(),
		Count:      len(records),
		Skipped:    skipped,
		Source:     st.status.Source,
		LoadedAt:   time.Now(),
	}
	logger.Info("reloaded %s: %d records (%d skipped)", c, len(records), skipped)
	return st.status, nil
}

func (s *CatalogService) fetch(ctx context.Context, c domain.Collection) ([]domain.Record, map[string]domain.Record, int, error) {
	if s.source == nil {
		return nil, nil, 0, fmt.Errorf("%w: no dataset source configured", domain.ErrDatasetUnavailable)
	}

	raw, err := s.source.Fetch(ctx, c)
	if err != nil {
		if errors.Is(err, domain.ErrDatasetUnavailable) {
			return nil, nil, 0, err
		}
		return nil, nil, 0, fmt.Errorf("%w: %w", domain.ErrDatasetUnavailable, err)
	}

	records := make([]domain.Record, 0, len(raw))
	index := make(map[string]domain.Record, len(raw))
	skipped := 0

	for i, obj := range raw {
		rec, err := domain.NewRecord(obj)
		if err != nil {
			logger.Warn("record %d: %v", i, err)
			skipped++
			continue
		}
		id := rec.ApplicationID()
		if _, dup := index[id]; dup {
			logger.Warn("record %d: duplicate ApplicationId %s, keeping first", i, id)
			skipped++
			continue
		}
		index[id] = rec
		records = append(records, rec)
	}

	return records, index, skipped, nil
}

// Status reports the load state of a collection.
func (s *CatalogService) Status(c domain.Collection) domain.LoadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.collections[c]
	if !ok {
		return domain.LoadStatus{Collection: c, State: domain.LoadIdle, StateName: domain.LoadIdle.String()}
	}
	return st.status
}

// WaitLoaded blocks until the collection has finished loading.
// It gives up after the wait timeout with domain.ErrLoadTimeout.
func (s *CatalogService) WaitLoaded(ctx context.Context, c domain.Collection) error {
	s.mu.Lock()
	st := s.stateLocked(c)
	done, finished, timeout := st.done, st.finished, s.waitTimeout
	s.mu.Unlock()

	if !finished {
		timer := time.NewTimer(timeout)
		defer timer.Stop()

		select {
		case <-done:
		case <-timer.C:
			return fmt.Errorf("%w after %s", domain.ErrLoadTimeout, timeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return statusErr(s.Status(c))
}

func statusErr(status domain.LoadStatus) error {
	switch status.State {
	case domain.LoadReady:
		return nil
	case domain.LoadFailed:
		if status.Err != nil {
			return status.Err
		}
		return domain.ErrDatasetUnavailable
	default:
		return fmt.Errorf("%w: %s", domain.ErrDatasetNotLoaded, status.Collection)
	}
}

// snapshot is a read-only view of a loaded collection.
type snapshot struct {
	records []domain.Record
	index   map[string]domain.Record
}

// ready returns the loaded collection or the reason it is unavailable.
func (s *CatalogService) ready(c domain.Collection) (snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.collections[c]
	if !ok {
		return snapshot{}, fmt.Errorf("%w: %s", domain.ErrDatasetNotLoaded, c)
	}
	// A reload keeps serving the previous copy until it is swapped.
	if st.index == nil {
		if err := statusErr(st.status); err != nil {
			return snapshot{}, err
		}
	}
	return snapshot{records: st.records, index: st.index}, nil
}

// Records returns the loaded collection in file order.
func (s *CatalogService) Records(_ context.Context, c domain.Collection) ([]domain.Record, error) {
	st, err := s.ready(c)
	if err != nil {
		return nil, err
	}
	return slices.Clone(st.records), nil
}

// Browse runs filter, sort and pagination for a view state.
func (s *CatalogService) Browse(_ context.Context, c domain.Collection, state domain.ViewState) (domain.Page, error) {
	st, err := s.ready(c)
	if err != nil {
		return domain.Page{}, err
	}

	logger.Debug("browse %s: search=%q sort=%s page=%d", c, state.Filter.Search, state.Sort, state.Page)
	page := pipeline.Run(st.records, state)
	logger.Debug("browse %s: %d of %d match", c, page.Total, len(st.records))
	return page, nil
}

// Get returns one record by ApplicationId.
func (s *CatalogService) Get(_ context.Context, c domain.Collection, id string) (domain.Record, error) {
	st, err := s.ready(c)
	if err != nil {
		return nil, err
	}
	rec, ok := st.index[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("%w: application %s", domain.ErrNotFound, id)
	}
	return rec, nil
}

// Summary returns the display view of one record.
func (s *CatalogService) Summary(ctx context.Context, c domain.Collection, id string) (domain.Summary, error) {
	rec, err := s.Get(ctx, c, id)
	if err != nil {
		return domain.Summary{}, err
	}
	return pipeline.Summarize(rec), nil
}

// Facets lists the selectable facet values of a collection.
func (s *CatalogService) Facets(_ context.Context, c domain.Collection) (domain.FacetOptions, error) {
	st, err := s.ready(c)
	if err != nil {
		return nil, err
	}
	return pipeline.FacetOptions(st.records), nil
}
