package post

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/kana/pkg/adapters/fs"
	"github.com/aretw0/kana/pkg/core"
	"github.com/aretw0/kana/pkg/info"
)

// SetPaths places the post inside the archive rooted at WithDir, writing
// files in the WithFormat format (".json" by default).
func (p *Post) SetPaths(_ context.Context, opts ...core.Option) error {
	params := core.ApplyOptions(opts...)
	if params.Dir == "" {
		return fmt.Errorf("%w: no directory given", ErrNoPaths)
	}
	layout := fs.NewLayout(params.Dir, params.Format)
	if _, err := info.ForPath(layout.Info(p.id), false); err != nil {
		return err
	}
	p.layout = &layout
	return nil
}

// Paths returns the archive layout of the post, if set.
func (p *Post) Paths() (fs.Layout, bool) {
	if p.layout == nil {
		return fs.Layout{}, false
	}
	return *p.layout, true
}

func (p *Post) mediaPath() (string, error) {
	if p.layout == nil {
		return "", ErrNoPaths
	}
	ext, _ := p.info["file_ext"].(string)
	return p.layout.Media(p.id, ext), nil
}

// Write persists info, artcom and notes. Existing files are kept unless
// WithOverwrite is given; empty artcom and notes are not written.
func (p *Post) Write(_ context.Context, opts ...core.Option) error {
	if p.layout == nil {
		return ErrNoPaths
	}
	params := core.ApplyOptions(opts...)

	s, err := info.ForPath(p.layout.Info(p.id), false)
	if err != nil {
		return err
	}

	files := []struct {
		path string
		v    any
		skip bool
	}{
		{p.layout.Info(p.id), p.info, false},
		{p.layout.Artcom(p.id), p.artcom, len(p.artcom) == 0},
		{p.layout.Notes(p.id), p.notes, len(p.notes) == 0},
	}

	for _, f := range files {
		if f.skip {
			continue
		}
		if !params.Overwrite {
			if _, err := os.Stat(f.path); err == nil {
				p.logger.Debug("file exists, not overwriting", "path", f.path)
				continue
			}
		}
		data, err := s.Serialize(f.v)
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", f.path, err)
		}
		if err := fs.WriteFileAtomic(f.path, data, 0644); err != nil {
			return err
		}
	}

	p.logger.Debug("wrote post", "root", p.layout.Root)
	return nil
}

// Load reads back whatever Write left on disk. The info file is mandatory.
func (p *Post) Load(_ context.Context, _ ...core.Option) error {
	if p.layout == nil {
		return ErrNoPaths
	}

	infos, err := info.ReadFile(p.layout.Info(p.id))
	if err != nil {
		return fmt.Errorf("failed to load info: %w", err)
	}
	if len(infos) != 1 {
		return fmt.Errorf("%w: info file holds %d entries", ErrAmbiguous, len(infos))
	}
	id, err := infos[0].ID()
	if err != nil {
		return err
	}
	if id != p.id {
		return fmt.Errorf("info file describes post %s, not %s", id, p.id)
	}

	artcom, err := readOptional(p.layout.Artcom(p.id))
	if err != nil {
		return err
	}
	notes, err := readOptional(p.layout.Notes(p.id))
	if err != nil {
		return err
	}

	p.info, p.artcom, p.notes = infos[0], artcom, notes
	return nil
}

func readOptional(path string) ([]core.Info, error) {
	infos, err := info.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return infos, err
}

// Serialize renders the post info in the given format, for display.
func (p *Post) Serialize(format string) ([]byte, error) {
	s, err := info.ForPath("post."+strings.TrimPrefix(format, "."), false)
	if err != nil {
		return nil, err
	}
	data, err := s.Serialize(p.info)
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(data), nil
}
