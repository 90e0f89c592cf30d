package driving

import (
	"context"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

// CatalogService loads the application collections and answers browse
// requests over them.
type CatalogService interface {
	// Load fetches and decodes a collection, replacing any previous copy.
	// On failure the collection is left empty and the error wraps
	// domain.ErrDatasetUnavailable.
	Load(ctx context.Context, collection domain.Collection) (domain.LoadStatus, error)

	// Reload refreshes a ready collection, keeping the previous copy when
	// the fetch fails. A collection that is not ready is loaded.
	Reload(ctx context.Context, collection domain.Collection) (domain.LoadStatus, error)

	// Status reports the load state of a collection.
	Status(collection domain.Collection) domain.LoadStatus

	// WaitLoaded blocks until the collection has finished loading, the
	// context ends or domain.LoadWaitTimeout passes.
	WaitLoaded(ctx context.Context, collection domain.Collection) error

	// Records returns the loaded collection in file order.
	Records(ctx context.Context, collection domain.Collection) ([]domain.Record, error)

	// Browse runs filter, sort and pagination for a view state.
	Browse(ctx context.Context, collection domain.Collection, state domain.ViewState) (domain.Page, error)

	// Get returns one record by ApplicationId.
	Get(ctx context.Context, collection domain.Collection, id string) (domain.Record, error)

	// Summary returns the display view of one record.
	Summary(ctx context.Context, collection domain.Collection, id string) (domain.Summary, error)

	// Facets lists the selectable facet values of a collection.
	Facets(ctx context.Context, collection domain.Collection) (domain.FacetOptions, error)
}
