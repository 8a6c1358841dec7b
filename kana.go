package kana

import (
	"context"
	"iter"
	"log/slog"

	"github.com/aretw0/kana/internal/platform"
	"github.com/aretw0/kana/pkg/core"
	"github.com/aretw0/kana/pkg/post"
	"github.com/aretw0/kana/pkg/typed"
)

// --- Types ---

// ID identifies a post.
type ID = core.ID

// Info is the raw description of a post.
type Info = core.Info

// Store is the keyed collection of posts.
type Store = core.Store

// Operation names a post method that can be broadcast over a store.
type Operation = core.Operation

// Post is the archived post implementation.
type Post = post.Post

// Source is where posts fetch their data from.
type Source = post.Source

// Model is a typed view of a post info.
type Model[T any] = typed.Model[T]

// --- Configuration ---

// Option defines a functional option for configuring kana.
type Option = platform.Option

// WithLogger sets the logger for stores, posts and archives.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSource sets where posts fetch their data from.
func WithSource(src Source) Option {
	return platform.WithSource(src)
}

// WithSourceArchive fetches posts from another archive on disk.
func WithSourceArchive(path string) Option {
	return platform.WithSourceArchive(path)
}

// WithArchive places every built post into the archive rooted at dir.
func WithArchive(dir string) Option {
	return platform.WithArchive(dir)
}

// WithFormat sets the format of written info files (".json", ".yaml").
func WithFormat(ext string) Option {
	return platform.WithFormat(ext)
}

// WithWorkers bounds parallel broadcasts.
func WithWorkers(n int) Option {
	return platform.WithWorkers(n)
}

// WithEagerLoad fetches everything as soon as a store is created.
func WithEagerLoad(eager bool) Option {
	return platform.WithEagerLoad(eager)
}

// --- Factory ---

// NewStore creates a post store seeded with values: posts, infos, ids,
// id lists ("1,2,3"), info file globs, or slices of those.
func NewStore(ctx context.Context, values []any, opts ...Option) (*Store, error) {
	return platform.NewStore(ctx, values, opts...)
}

// NewBuilder returns the builder NewStore would use.
func NewBuilder(opts ...Option) *post.Builder {
	return platform.NewBuilder(opts...)
}

// LoadArchive creates a store with every post of the archive at path.
func LoadArchive(ctx context.Context, path string, opts ...Option) (*Store, error) {
	return platform.LoadArchive(ctx, path, opts...)
}

// --- Operations ---

// Fetch fetches posts from the configured source into the configured archive.
func Fetch(ctx context.Context, values []any, opts ...Option) (*Store, error) {
	return platform.Fetch(ctx, values, opts...)
}

// Merge unions archives into dest.
func Merge(ctx context.Context, dest string, srcs []string, overwrite bool, opts ...Option) (*Store, error) {
	return platform.Merge(ctx, dest, srcs, overwrite, opts...)
}

// Diff returns the posts of archive a missing from archive b.
func Diff(ctx context.Context, a, b string, opts ...Option) (*Store, error) {
	return platform.Diff(ctx, a, b, opts...)
}

// Verify checks the media of every post of an archive.
func Verify(ctx context.Context, path string, op Operation, opts ...Option) (*Store, error) {
	return platform.Verify(ctx, path, op, opts...)
}

// --- Utils ---

// FindArchiveRoot looks upwards from startDir for an archive root.
func FindArchiveRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// Posts iterates over the posts of s as typed models.
func Posts[T any](s *Store) iter.Seq2[*Model[T], error] {
	return typed.Posts[T](s)
}
