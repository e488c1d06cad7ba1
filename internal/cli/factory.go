// Package cli wires configuration into engines, indexes and session stores
// for the wayfinder command.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/internal/logging"
	loamAdapter "github.com/aretw0/wayfinder/pkg/adapters/loam"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/wayfinder/pkg/adapters/redis"
	"github.com/aretw0/wayfinder/pkg/adapters/remote"
	"github.com/aretw0/wayfinder/pkg/adapters/sqlite"
	"github.com/aretw0/wayfinder/pkg/catalog"
	"github.com/aretw0/wayfinder/pkg/content"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/session"
	backend "github.com/redis/go-redis/v9"
	"golang.org/x/term"
)

// NewLogger builds the stderr logger for the configured level.
func NewLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// GraphLoader opens the graph named by cfg.Dir: a Loam directory of markdown
// nodes, a single YAML file, or the built-in crate catalog when empty.
func GraphLoader(cfg config.Config) (ports.GraphLoader, error) {
	switch {
	case cfg.Dir == "":
		loader, err := catalog.Loader()
		if err != nil {
			return nil, fmt.Errorf("built-in catalog: %w", err)
		}
		return loader, nil

	case isYAMLFile(cfg.Dir):
		f, err := os.Open(cfg.Dir)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return memory.LoadYAML(f)
	}
	return loamAdapter.Open(cfg.Dir)
}

// RootOf returns the root a loader declares, or the default root.
func RootOf(loader ports.GraphLoader) string {
	if r, ok := loader.(interface{ Root() string }); ok && r.Root() != "" {
		return r.Root()
	}
	return domain.DefaultRootID
}

func isYAMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// BuildEngine compiles the graph selected by cfg.Dir into an engine.
func BuildEngine(cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*wayfinder.Engine, error) {
	loader, err := GraphLoader(cfg)
	if err != nil {
		return nil, err
	}

	engine, err := wayfinder.New(cfg.Dir,
		wayfinder.WithLoader(loader),
		wayfinder.WithEntryNode(RootOf(loader)),
		wayfinder.WithLogger(logger),
		wayfinder.WithLifecycleHooks(hooks),
		wayfinder.WithMaxDepth(cfg.MaxDepth),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// LoadEntries reads the documentation collection in cfg.Search.Docs.
// Drafts are dropped unless cfg.Search.Drafts is set.
func LoadEntries(ctx context.Context, cfg config.Config, logger *slog.Logger) ([]domain.Entry, error) {
	src, err := loamAdapter.OpenContent(cfg.Search.Docs, loamAdapter.WithContentLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("open docs: %w", err)
	}
	coll, err := content.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	if cfg.Search.Drafts {
		return coll.All(), nil
	}
	return coll.Published(), nil
}

// BuildIndex picks the documentation index: a remote server, a prebuilt
// sqlite file or the docs directory indexed in memory. It returns a nil
// index when search is not configured. close is never nil.
func BuildIndex(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.SearchIndex, func() error, error) {
	noop := func() error { return nil }
	s := cfg.Search

	switch {
	case s.Remote != "":
		logger.Debug("using remote index", "url", s.Remote)
		return remote.New(s.Remote, remote.WithLimit(s.Limit)), noop, nil

	case s.Index != "":
		if _, err := os.Stat(s.Index); err != nil {
			return nil, noop, fmt.Errorf("search index: %w", err)
		}
		idx, err := sqlite.Open(ctx, s.Index, sqlite.WithBaseURL(s.BaseURL))
		if err != nil {
			return nil, noop, err
		}
		logger.Debug("using sqlite index", "path", s.Index)
		return idx, idx.Close, nil

	case s.Docs != "":
		pending := memory.NewPendingIndex(memory.WithBaseURL(s.BaseURL))
		entries, err := LoadEntries(ctx, cfg, logger)
		if err != nil {
			return nil, noop, err
		}
		pending.Load(entries)
		logger.Debug("indexed docs in memory", "path", s.Docs, "entries", len(entries))
		return pending, noop, nil
	}
	return nil, noop, nil
}

// BuildSessions returns a session manager over redis when configured,
// otherwise over an in-memory store.
func BuildSessions(ctx context.Context, cfg config.Config, nav session.Navigator, logger *slog.Logger) (*session.Manager, func() error, error) {
	opts := []session.Option{session.WithLogger(logger), session.WithLockTTL(cfg.Serve.LockTTL)}

	if cfg.Serve.RedisURL == "" {
		return session.NewManager(memory.NewStore(), nav, opts...), func() error { return nil }, nil
	}

	redisOpts, err := backend.ParseURL(cfg.Serve.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("redis url: %w", err)
	}
	client := backend.NewClient(redisOpts)
	store := redisAdapter.NewFromClient(client, redisAdapter.WithTTL(cfg.Serve.SessionTTL))
	if err := store.Ping(ctx); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	opts = append(opts, session.WithLocker(redisAdapter.NewLocker(client, store.Prefix())))
	logger.Info("sessions stored in redis", "addr", redisOpts.Addr)
	return session.NewManager(store, nav, opts...), store.Close, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
