package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/appreview/internal/core/domain"
	"github.com/custodia-labs/appreview/internal/core/ports/driving"
	"github.com/custodia-labs/appreview/internal/logger"
)

// RefreshResult records one background reload.
type RefreshResult struct {
	Collection domain.Collection
	StartedAt  time.Time
	EndedAt    time.Time
	Count      int
	Err        error
}

// Refresher reloads collections on a fixed interval while a long-running
// surface (HTTP, MCP) is serving them.
type Refresher struct {
	catalog     driving.CatalogService
	interval    time.Duration
	collections []domain.Collection

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	wg      sync.WaitGroup
	last    map[domain.Collection]RefreshResult
}

// NewRefresher creates a refresher. With no collections given it refreshes
// both.
func NewRefresher(catalog driving.CatalogService, interval time.Duration, collections ...domain.Collection) *Refresher {
	if len(collections) == 0 {
		collections = domain.AllCollections()
	}
	return &Refresher{
		catalog:     catalog,
		interval:    interval,
		collections: collections,
		last:        make(map[domain.Collection]RefreshResult),
	}
}

// Run reloads on every tick until ctx ends or Stop is called. A zero
// interval returns immediately. The first reload happens one interval
// after start; the initial load belongs to the caller.
func (r *Refresher) Run(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	stopCh, doneCh := r.stopCh, r.doneCh
	r.mu.Unlock()

	defer func() {
		r.wg.Wait()
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
		close(doneCh)
	}()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-stopCh:
			return nil
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

// Stop ends Run and waits for in-flight reloads.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	select {
	case <-r.stopCh:
	default:
		close(r.stopCh)
	}
	doneCh := r.doneCh
	r.mu.Unlock()

	<-doneCh
}

// Last returns the most recent reload of a collection.
func (r *Refresher) Last(c domain.Collection) (RefreshResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.last[c]
	return res, ok
}

func (r *Refresher) refreshAll(ctx context.Context) {
	for _, c := range r.collections {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.refresh(ctx, c)
		}()
	}
}

func (r *Refresher) refresh(ctx context.Context, c domain.Collection) {
	res := RefreshResult{Collection: c, StartedAt: time.Now()}
	status, err := r.catalog.Reload(ctx, c)
	res.EndedAt = time.Now()
	res.Count = status.Count
	res.Err = err

	if err != nil {
		logger.Warn("refresh %s: %v", c, err)
	} else {
		logger.Debug("refresh %s: %d records in %s", c, status.Count, res.EndedAt.Sub(res.StartedAt))
	}

	r.mu.Lock()
	r.last[c] = res
	r.mu.Unlock()
}
