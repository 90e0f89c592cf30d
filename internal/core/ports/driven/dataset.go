package driven

import (
	"context"

	"github.com/custodia-labs/appreview/internal/core/domain"
)

// DatasetSource reads the raw JSON objects of a collection.
// Implementations read a local file or fetch over HTTP, and validate the
// document shape before returning it.
type DatasetSource interface {
	// Fetch returns the raw records of a collection in file order.
	Fetch(ctx context.Context, collection domain.Collection) ([]map[string]any, error)

	// Describe returns where the collection is read from, for status output.
	Describe(collection domain.Collection) string
}
