package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/kana/pkg/adapters/fs"
	"github.com/aretw0/kana/pkg/core"
)

// Fetch builds posts from values, fetches everything from the configured
// source and writes the posts into the configured archive.
func Fetch(ctx context.Context, values []any, opts ...Option) (*core.Store, error) {
	o := parseOptions(opts)
	if o.dir == "" {
		return nil, fmt.Errorf("fetch needs a destination archive")
	}

	b := newBuilder(o)
	store, err := core.NewStore(ctx, core.StoreConfig{
		Builder:   b,
		EagerLoad: true,
		Workers:   o.workers,
		Logger:    o.logger,
	}, values...)
	if err != nil {
		return nil, err
	}
	if err := store.Write(ctx); err != nil {
		return store, err
	}
	if archive, ok := b.Source.(*fs.Archive); ok {
		if err := archive.SaveIndex(); err != nil {
			o.logger.Warn("failed to save source index", "path", archive.Path, "error", err)
		}
	}
	o.logger.Info("fetched posts", "count", store.Len(), "archive", o.dir)
	return store, nil
}

// Merge unions the archives at srcs, in order, into dest. On id collision the
// later archive wins. Media files are copied from the archive each post comes
// from. Existing files in dest are replaced only when overwrite is set.
func Merge(ctx context.Context, dest string, srcs []string, overwrite bool, opts ...Option) (*core.Store, error) {
	if len(srcs) == 0 {
		return nil, fmt.Errorf("merge needs at least one source archive")
	}

	var merged *core.Store
	for _, src := range srcs {
		next, err := LoadArchive(ctx, src, append(opts, WithSourceArchive(src))...)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = next
			continue
		}
		if err := merged.Merge(next); err != nil {
			return nil, err
		}
	}

	o := parseOptions(opts)
	if err := merged.SetPaths(ctx, core.WithDir(dest), core.WithFormat(o.format)); err != nil {
		return nil, err
	}
	if err := merged.GetMedia(ctx, core.WithOverwrite(overwrite)); err != nil {
		return nil, err
	}
	if err := merged.Write(ctx, core.WithOverwrite(overwrite)); err != nil {
		return nil, err
	}
	o.logger.Info("merged archives", "sources", len(srcs), "posts", merged.Len(), "archive", dest)
	return merged, nil
}

// Diff returns the posts of archive a whose id is absent from archive b.
func Diff(ctx context.Context, a, b string, opts ...Option) (*core.Store, error) {
	left, err := LoadArchive(ctx, a, opts...)
	if err != nil {
		return nil, err
	}
	right, err := LoadArchive(ctx, b, opts...)
	if err != nil {
		return nil, err
	}
	return left.Difference(right)
}

// Verify checks every media file of the archive at path against its info.
func Verify(ctx context.Context, path string, op core.Operation, opts ...Option) (*core.Store, error) {
	switch op {
	case core.OpVerifyMedia, core.OpVerifyMediaByMD5, core.OpVerifyMediaByFilesize:
	default:
		return nil, fmt.Errorf("%w: %s is not a verification", core.ErrUnknownOperation, op)
	}

	store, err := LoadArchive(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	return store, store.Map(ctx, op)
}
