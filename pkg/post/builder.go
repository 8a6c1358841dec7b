package post

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/aretw0/kana/pkg/core"
	"github.com/aretw0/kana/pkg/info"
)

// Builder implements core.Builder for archived posts.
type Builder struct {
	Source Source
	Logger *slog.Logger
	// Dir, when set, is the archive every built post is placed into.
	Dir    string
	Format string
}

var _ core.Builder = (*Builder)(nil)

// Enumerate implements core.Builder using info.FromAuto.
func (b *Builder) Enumerate(raw any) iter.Seq2[core.Info, error] {
	return info.FromAuto(raw)
}

// Build implements core.Builder. raw must describe exactly one post.
func (b *Builder) Build(raw any) (core.Post, error) {
	var found core.Info
	n := 0
	for i, err := range info.FromAuto(raw) {
		if err != nil {
			return nil, err
		}
		n++
		if n > 1 {
			break
		}
		found = i
	}
	if n != 1 {
		return nil, fmt.Errorf("%w: %T", ErrAmbiguous, raw)
	}

	p, err := New(found, b.Source, b.Logger)
	if err != nil {
		return nil, err
	}
	if b.Dir != "" {
		if err := p.SetPaths(context.Background(), core.WithDir(b.Dir), core.WithFormat(b.Format)); err != nil {
			return nil, err
		}
	}
	return p, nil
}
