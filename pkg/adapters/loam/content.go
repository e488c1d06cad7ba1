package loam

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/content"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// ContentSource reads documentation pages from a Loam repository.
// Pages with invalid frontmatter are skipped and logged unless strict.
type ContentSource struct {
	repo   core.Repository
	logger *slog.Logger
	strict bool
}

// ContentOption configures a ContentSource.
type ContentOption func(*ContentSource)

// WithContentLogger sets the logger used to report skipped pages.
func WithContentLogger(logger *slog.Logger) ContentOption {
	return func(s *ContentSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStrictContent fails the whole load on the first invalid page.
func WithStrictContent(strict bool) ContentOption {
	return func(s *ContentSource) {
		s.strict = strict
	}
}

// NewContentSource wraps an initialized repository.
func NewContentSource(repo core.Repository, opts ...ContentOption) *ContentSource {
	s := &ContentSource{repo: repo, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenContent initializes a read-only repository over a docs directory.
func OpenContent(path string, opts ...ContentOption) (*ContentSource, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return NewContentSource(repo, opts...), nil
}

// Entries implements ports.ContentSource. Entries come back sorted by slug.
func (s *ContentSource) Entries(ctx context.Context) ([]domain.Entry, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	entries := make([]domain.Entry, 0, len(docs))
	for _, doc := range docs {
		entry, err := content.Parse(doc.ID, doc.Metadata, doc.Content)
		if err != nil {
			if s.strict {
				return nil, err
			}
			s.logger.Warn("skipping page", "id", doc.ID, "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Slug < entries[j].Slug })
	return entries, nil
}
