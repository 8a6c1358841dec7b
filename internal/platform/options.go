package platform

import (
	"log/slog"

	"github.com/aretw0/kana/pkg/post"
)

// options holds the internal configuration for building stores.
type options struct {
	logger    *slog.Logger
	source    post.Source
	sourceDir string
	dir       string
	format    string
	workers   int
	eagerLoad bool
}

// Option defines a functional option for configuring kana.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		format:  ".json",
		workers: 1,
	}
}

func parseOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// WithLogger sets the logger used by stores, posts and archives.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSource sets where posts fetch their info, extra data and media from.
// It takes precedence over WithSourceArchive.
func WithSource(src post.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithSourceArchive fetches posts from another archive on disk.
func WithSourceArchive(path string) Option {
	return func(o *options) {
		o.sourceDir = path
	}
}

// WithArchive places every built post into the archive rooted at dir.
func WithArchive(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithFormat sets the format of written info files (".json", ".yaml").
func WithFormat(ext string) Option {
	return func(o *options) {
		o.format = ext
	}
}

// WithWorkers bounds parallel broadcasts. One (the default) is sequential.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithEagerLoad fetches everything (GetAll) as soon as a store is created.
func WithEagerLoad(eager bool) Option {
	return func(o *options) {
		o.eagerLoad = eager
	}
}
