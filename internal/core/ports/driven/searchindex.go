package driven

import (
	"context"

	"github.com/custodia-labs/drivesync/internal/core/domain"
)

// SearchIndex stores index documents in named indexes.
type SearchIndex interface {
	// Upsert inserts or replaces documents by id. Re-applying the same
	// documents leaves the index unchanged.
	Upsert(ctx context.Context, index string, docs []domain.IndexDocument) error

	// Delete removes documents by id. Unknown ids are ignored.
	Delete(ctx context.Context, index string, ids []string) error

	// Close releases resources.
	Close() error
}
