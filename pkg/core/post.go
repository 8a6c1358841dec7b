package core

import (
	"context"
	"iter"
)

// Post defines the contract a record must satisfy to live in a Store.
// The core never implements these operations; it only forwards calls to
// them (see Operation and Store.Map).
type Post interface {
	// ID returns the stable identifier of the post.
	ID() ID

	// Equal reports whether other holds the same content.
	Equal(other Post) bool

	// GetAll fetches info, extra data and media.
	GetAll(ctx context.Context, opts ...Option) error
	// GetExtra fetches artist commentary and notes.
	GetExtra(ctx context.Context, opts ...Option) error
	// GetMedia downloads the media file.
	GetMedia(ctx context.Context, opts ...Option) error
	// GetArtcom fetches the artist commentary.
	GetArtcom(ctx context.Context, opts ...Option) error
	// GetNotes fetches the translation notes.
	GetNotes(ctx context.Context, opts ...Option) error

	// SetPaths computes where the post is written to and loaded from.
	SetPaths(ctx context.Context, opts ...Option) error
	// Write persists the post.
	Write(ctx context.Context, opts ...Option) error
	// Load reads a previously written post back.
	Load(ctx context.Context, opts ...Option) error

	// VerifyMedia checks the media file against every known checksum.
	VerifyMedia(ctx context.Context, opts ...Option) error
	// VerifyMediaByMD5 checks the media file MD5 digest.
	VerifyMediaByMD5(ctx context.Context, opts ...Option) error
	// VerifyMediaByFilesize checks the media file size.
	VerifyMediaByFilesize(ctx context.Context, opts ...Option) error
}

// Builder turns raw values into posts. It is the construction collaborator
// a Store uses to normalize everything it stores.
type Builder interface {
	// Enumerate yields one descriptor per post described by raw.
	// A single raw value may describe zero or more posts.
	Enumerate(raw any) iter.Seq2[Info, error]

	// Build converts a raw value (descriptor, id, ...) into a single post
	// without triggering any fetch.
	Build(raw any) (Post, error)
}

// Params carries the arguments forwarded to post operations.
type Params struct {
	// Dir is the base directory used by SetPaths.
	Dir string
	// Format is the serializer extension used for written files (".json", ".yaml").
	Format string
	// Overwrite forces writes and downloads even when files already exist.
	Overwrite bool
}

// Option configures a single post operation call.
type Option func(*Params)

// WithDir sets the base directory for SetPaths.
func WithDir(dir string) Option {
	return func(p *Params) {
		p.Dir = dir
	}
}

// WithFormat sets the file format (extension) used by SetPaths.
func WithFormat(ext string) Option {
	return func(p *Params) {
		p.Format = ext
	}
}

// WithOverwrite makes Write and GetMedia replace existing files.
func WithOverwrite(overwrite bool) Option {
	return func(p *Params) {
		p.Overwrite = overwrite
	}
}

// ApplyOptions folds opts into a Params value.
func ApplyOptions(opts ...Option) Params {
	var p Params
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
