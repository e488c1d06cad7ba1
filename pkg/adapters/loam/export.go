package loam

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// Export writes nodes into repo as markdown files, one per node, in the
// frontmatter layout Loader reads back.
func Export(ctx context.Context, repo core.Repository, nodes []domain.Node) error {
	for _, n := range nodes {
		doc := toDocument(n)
		if err := repo.Save(ctx, doc); err != nil {
			return fmt.Errorf("export %s: %w", doc.ID, err)
		}
	}
	return nil
}

// ExportDir creates (or reuses) a repository at path and exports nodes into it.
func ExportDir(ctx context.Context, path string, nodes []domain.Node) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return err
	}
	repo, err := loam.Init(absPath, loam.WithVersioning(false))
	if err != nil {
		return fmt.Errorf("failed to initialize loam: %w", err)
	}
	return Export(ctx, repo, nodes)
}

func toDocument(n domain.Node) core.Document {
	meta := core.Metadata{"id": n.NodeID(), "type": n.NodeType()}
	var body string

	switch n := n.(type) {
	case *domain.Step:
		meta["question"] = n.Question
		options := make([]map[string]any, len(n.Options))
		for i, opt := range n.Options {
			entry := map[string]any{"label": opt.Label}
			if opt.Target.Terminal() {
				entry["result"] = opt.Target.TargetID()
			} else {
				entry["next"] = opt.Target.TargetID()
			}
			options[i] = entry
		}
		meta["options"] = options
		body = n.Description

	case *domain.Result:
		rec := n.Recommendation
		meta["crate"] = rec.Name
		if len(rec.Install) > 0 {
			meta["install"] = rec.Install
		}
		if rec.Example != "" {
			meta["example"] = rec.Example
		}
		body = rec.Description
	}

	return core.Document{ID: n.NodeID() + ".md", Content: body, Metadata: meta}
}
