package ports

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// SearchIndex is a pre-built documentation index.
type SearchIndex interface {
	// Search returns hits ranked best first. Implementations that are still
	// loading return domain.ErrIndexNotReady.
	Search(ctx context.Context, query string) ([]domain.Hit, error)
}

// ContentSource lists the raw entries of the documentation collection.
type ContentSource interface {
	Entries(ctx context.Context) ([]domain.Entry, error)
}
