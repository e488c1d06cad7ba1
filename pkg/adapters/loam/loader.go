package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/wayfinder/internal/compiler"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// Loader adapts a Loam repository of markdown/yaml/json files to the
// GraphLoader interface.
type Loader struct {
	Repo *loam.TypedRepository[NodeMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[NodeMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only strict repository at path.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps frontmatter numbers as json.Number. The engine never
	// writes to the graph, so the repository is opened read-only.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[NodeMetadata](repo)), nil
}

// GetNode loads a file and returns the node encoded for the compiler.
func (l *Loader) GetNode(id string) ([]byte, error) {
	doc, err := l.Repo.Get(context.Background(), id)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	node, err := toNode(doc.ID, doc.Data, doc.Content)
	if err != nil {
		return nil, err
	}
	return compiler.Encode(node)
}

func toNode(docID string, meta NodeMetadata, body string) (domain.Node, error) {
	id := meta.ID
	if id == "" {
		id = docID
	}
	id = trimExtension(id)

	description := meta.Description
	if description == "" {
		description = strings.TrimSpace(body)
	}

	if meta.isResult() {
		name := meta.Crate
		if name == "" {
			name = id
		}
		return &domain.Result{
			ID: id,
			Recommendation: domain.Recommendation{
				Name:        name,
				Description: description,
				Install:     meta.Install,
				Example:     meta.Example,
			},
		}, nil
	}

	step := &domain.Step{
		ID:          id,
		Question:    meta.Question,
		Description: description,
		Options:     make([]domain.Option, 0, len(meta.Options)),
	}
	for _, o := range meta.Options {
		opt, err := domain.OptionFromWire(o.Label, trimExtension(o.Next), trimExtension(o.Result))
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", id, err)
		}
		step.Options = append(step.Options, opt)
	}
	return step, nil
}

// ListNodes lists all nodes in the repository. Two files that resolve to the
// same id are reported as a collision.
func (l *Loader) ListNodes() ([]string, error) {
	docs, err := l.Repo.List(context.Background())
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	return ids, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
