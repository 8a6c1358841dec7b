package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/kana/pkg/adapters/fs"
	"github.com/aretw0/kana/pkg/core"
	"github.com/aretw0/kana/pkg/post"
)

// NewBuilder wires a post builder from options.
func NewBuilder(opts ...Option) *post.Builder {
	return newBuilder(parseOptions(opts))
}

func newBuilder(o *options) *post.Builder {
	src := o.source
	if src == nil && o.sourceDir != "" {
		src = fs.NewArchive(fs.Config{Path: o.sourceDir, Logger: o.logger, SystemDir: fs.SystemDir})
	}
	return &post.Builder{
		Source: src,
		Logger: o.logger,
		Dir:    o.dir,
		Format: o.format,
	}
}

// NewStore creates a post store seeded with values.
//
//	store, err := kana.NewStore(ctx, []any{"1,2,3"}, kana.WithSourceArchive("./mirror"), kana.WithArchive("./out"))
func NewStore(ctx context.Context, values []any, opts ...Option) (*core.Store, error) {
	o := parseOptions(opts)

	cfg := core.StoreConfig{
		Builder:   newBuilder(o),
		EagerLoad: o.eagerLoad,
		Workers:   o.workers,
		Logger:    o.logger,
	}

	store, err := core.NewStore(ctx, cfg, values...)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("store created", "posts", store.Len(), "eager", o.eagerLoad)
	return store, nil
}

// LoadArchive creates a store holding every post of the archive at path,
// loaded from disk. The archive is also where the posts write to.
func LoadArchive(ctx context.Context, path string, opts ...Option) (*core.Store, error) {
	archive := fs.NewArchive(fs.Config{Path: path, Logger: parseOptions(opts).logger})
	ids, err := archive.IDs(ctx)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}

	// Loading happens below, never through a remote fetch.
	opts = append(opts, WithArchive(path), WithEagerLoad(false))
	store, err := NewStore(ctx, values, opts...)
	if err != nil {
		return nil, err
	}
	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load archive %s: %w", path, err)
	}
	return store, nil
}
