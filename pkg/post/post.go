// Package post implements core.Post for posts archived on the local
// filesystem and fetched from a Source.
package post

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/aretw0/kana/pkg/adapters/fs"
	"github.com/aretw0/kana/pkg/core"
)

// Common errors.
var (
	ErrNoSource      = errors.New("post has no source")
	ErrNoPaths       = errors.New("post paths are not set")
	ErrNoMedia       = errors.New("media file not found")
	ErrMediaMismatch = errors.New("media does not match its info")
	ErrAmbiguous     = errors.New("raw value does not describe exactly one post")
)

// Source is where posts get their data from (a booru API, another archive).
type Source interface {
	Info(ctx context.Context, id core.ID) (core.Info, error)
	Artcom(ctx context.Context, id core.ID) ([]core.Info, error)
	Notes(ctx context.Context, id core.ID) ([]core.Info, error)
	Media(ctx context.Context, info core.Info) (io.ReadCloser, error)
}

// Post is a single archived post.
type Post struct {
	id     core.ID
	info   core.Info
	artcom []core.Info
	notes  []core.Info

	layout *fs.Layout
	source Source
	logger *slog.Logger
}

var _ core.Post = (*Post)(nil)

// New creates a post from its info. Nothing is fetched.
func New(info core.Info, source Source, logger *slog.Logger) (*Post, error) {
	id, err := info.ID()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Post{
		id:     id,
		info:   maps.Clone(info),
		source: source,
		logger: logger.With("post", id),
	}, nil
}

// ID implements core.Post.
func (p *Post) ID() core.ID {
	return p.id
}

// Info returns a copy of the post info.
func (p *Post) Info() core.Info {
	return maps.Clone(p.info)
}

// Artcom returns the fetched artist commentary, if any.
func (p *Post) Artcom() []core.Info {
	return p.artcom
}

// Notes returns the fetched notes, if any.
func (p *Post) Notes() []core.Info {
	return p.notes
}

// Equal implements core.Post: same id and same content. A post read back
// from disk equals the one that was written.
func (p *Post) Equal(other core.Post) bool {
	o, ok := other.(*Post)
	if !ok || o.id != p.id {
		return false
	}
	a, err := p.canonical()
	if err != nil {
		return false
	}
	b, err := o.canonical()
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// canonical encodes the post content with sorted keys, numbers rendered
// alike whether they are ints, floats or json.Number, and empty extra data
// treated as absent.
func (p *Post) canonical() ([]byte, error) {
	return json.Marshal(struct {
		Info   core.Info   `json:"info"`
		Artcom []core.Info `json:"artcom"`
		Notes  []core.Info `json:"notes"`
	}{p.info, nonEmpty(p.artcom), nonEmpty(p.notes)})
}

func nonEmpty(infos []core.Info) []core.Info {
	if len(infos) == 0 {
		return nil
	}
	return infos
}

func (p *Post) String() string {
	return fmt.Sprintf("Post(%s)", p.id)
}

// hasFullInfo reports whether info holds more than the bare id.
func (p *Post) hasFullInfo() bool {
	return len(p.info) > 1
}

func (p *Post) requireSource() error {
	if p.source == nil {
		return ErrNoSource
	}
	return nil
}

// --- Fetching ---

// GetAll fetches the info when only the id is known, then extra data and media.
func (p *Post) GetAll(ctx context.Context, opts ...core.Option) error {
	if !p.hasFullInfo() {
		if err := p.GetInfo(ctx); err != nil {
			return err
		}
	}
	if err := p.GetExtra(ctx, opts...); err != nil {
		return err
	}
	return p.GetMedia(ctx, opts...)
}

// GetInfo replaces the info with the one held by the source.
func (p *Post) GetInfo(ctx context.Context) error {
	if err := p.requireSource(); err != nil {
		return err
	}
	info, err := p.source.Info(ctx, p.id)
	if err != nil {
		return fmt.Errorf("failed to fetch info: %w", err)
	}
	p.info = maps.Clone(info)
	p.logger.Debug("fetched info")
	return nil
}

// GetExtra fetches artist commentary and notes.
func (p *Post) GetExtra(ctx context.Context, opts ...core.Option) error {
	if err := p.GetArtcom(ctx, opts...); err != nil {
		return err
	}
	return p.GetNotes(ctx, opts...)
}

// GetArtcom fetches the artist commentary.
func (p *Post) GetArtcom(ctx context.Context, _ ...core.Option) error {
	if err := p.requireSource(); err != nil {
		return err
	}
	artcom, err := p.source.Artcom(ctx, p.id)
	if err != nil {
		return fmt.Errorf("failed to fetch artcom: %w", err)
	}
	p.artcom = artcom
	return nil
}

// GetNotes fetches the translation notes.
func (p *Post) GetNotes(ctx context.Context, _ ...core.Option) error {
	if err := p.requireSource(); err != nil {
		return err
	}
	notes, err := p.source.Notes(ctx, p.id)
	if err != nil {
		return fmt.Errorf("failed to fetch notes: %w", err)
	}
	p.notes = notes
	return nil
}

// GetMedia downloads the media file next to the other post files. An
// existing file that verifies is kept unless WithOverwrite is given.
func (p *Post) GetMedia(ctx context.Context, opts ...core.Option) error {
	if err := p.requireSource(); err != nil {
		return err
	}
	path, err := p.mediaPath()
	if err != nil {
		return err
	}

	params := core.ApplyOptions(opts...)
	if !params.Overwrite {
		if err := p.VerifyMedia(ctx); err == nil {
			p.logger.Debug("media already present", "path", path)
			return nil
		}
	}

	r, err := p.source.Media(ctx, p.info)
	if err != nil {
		return fmt.Errorf("failed to fetch media: %w", err)
	}
	defer r.Close()

	if err := fs.CopyFileAtomic(path, r, 0644); err != nil {
		return fmt.Errorf("failed to write media: %w", err)
	}
	p.logger.Info("downloaded media", "path", path)
	return nil
}
