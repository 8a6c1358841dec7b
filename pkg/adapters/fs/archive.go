package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/singleflight"

	"github.com/aretw0/kana/pkg/core"
	"github.com/aretw0/kana/pkg/info"
)

// ErrNotFound is returned when a post is absent from the archive.
var ErrNotFound = errors.New("post not found in archive")

// formats lists the info file extensions tried, in order.
var formats = []string{".json", ".yaml", ".yml"}

// Config holds the configuration for a filesystem archive.
type Config struct {
	Path   string
	Logger *slog.Logger
	// SystemDir, when set, keeps an index of parsed infos in
	// <Path>/<SystemDir>/index.json (e.g. ".kana").
	SystemDir string
}

// Archive reads posts from a directory written with the Layout convention.
// It serves as the fetch source of posts being copied into another archive.
type Archive struct {
	Path   string
	config Config
	cache  *cache
	// parses dedupes concurrent reads of the same info file.
	parses singleflight.Group
}

// NewArchive creates a filesystem archive reader.
func NewArchive(config Config) *Archive {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	a := &Archive{Path: config.Path, config: config}
	if config.SystemDir != "" {
		a.cache = newCache(config.Path, config.SystemDir)
		if err := a.cache.Load(); err != nil {
			config.Logger.Warn("ignoring archive index", "error", err)
		}
	}
	return a
}

// SaveIndex persists the info index, if the archive keeps one.
func (a *Archive) SaveIndex() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Save()
}

// IDs lists the posts that have an info file, in ascending order.
func (a *Archive) IDs(ctx context.Context) ([]core.ID, error) {
	entries, err := os.ReadDir(filepath.Join(a.Path, InfoDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}

	seen := make(map[core.ID]bool)
	var ids []core.ID
	for _, e := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if e.IsDir() || !supported(e.Name()) {
			continue
		}
		id, ok := IDFromPath(e.Name())
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// Info reads the info file of id, whatever its format. With an index, files
// unchanged since they were last parsed are served from it.
func (a *Archive) Info(ctx context.Context, id core.ID) (core.Info, error) {
	path, stat, ok := a.locate(InfoDir, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	rel, _ := filepath.Rel(a.Path, path)
	rel = filepath.ToSlash(rel)
	if a.cache != nil {
		if cached, hit := a.cache.Get(rel, stat.ModTime()); hit {
			return cached, nil
		}
	}

	v, err, _ := a.parses.Do(rel, func() (any, error) {
		infos, err := info.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if len(infos) != 1 {
			return nil, fmt.Errorf("info file of post %s holds %d entries", id, len(infos))
		}
		if a.cache != nil {
			a.cache.Set(rel, infos[0], stat.ModTime())
		}
		return infos[0], nil
	})
	if err != nil {
		return nil, err
	}
	return maps.Clone(v.(core.Info)), nil
}

// Artcom reads the artist commentary of id. A missing file means none.
func (a *Archive) Artcom(ctx context.Context, id core.ID) ([]core.Info, error) {
	return a.read(ArtcomDir, id)
}

// Notes reads the notes of id. A missing file means none.
func (a *Archive) Notes(ctx context.Context, id core.ID) ([]core.Info, error) {
	return a.read(NotesDir, id)
}

// Media opens the media file described by p.
func (a *Archive) Media(ctx context.Context, p core.Info) (io.ReadCloser, error) {
	id, err := p.ID()
	if err != nil {
		return nil, err
	}

	path := ""
	if ext, ok := p["file_ext"].(string); ok && ext != "" {
		path = NewLayout(a.Path, "").Media(id, ext)
	} else {
		// Globbing inside the media directory keeps the archive path literal.
		mediaDir := filepath.Join(a.Path, MediaDir)
		if _, err := os.Stat(mediaDir); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: media of %s", ErrNotFound, id)
		}
		matches, err := doublestar.Glob(os.DirFS(mediaDir), id.String()+".*", doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: media of %s", ErrNotFound, id)
		}
		slices.Sort(matches)
		path = filepath.Join(mediaDir, filepath.FromSlash(matches[0]))
	}

	a.config.Logger.Debug("opening archived media", "id", id, "path", path)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: media of %s", ErrNotFound, id)
		}
		return nil, err
	}
	return f, nil
}

// read parses <dir>/<id>.<ext> for the first supported extension found.
// It returns nil, nil when no such file exists.
func (a *Archive) read(dir string, id core.ID) ([]core.Info, error) {
	path, _, ok := a.locate(dir, id)
	if !ok {
		return nil, nil
	}
	return info.ReadFile(path)
}

func (a *Archive) locate(dir string, id core.ID) (string, os.FileInfo, bool) {
	for _, ext := range formats {
		path := filepath.Join(a.Path, dir, id.String()+ext)
		if stat, err := os.Stat(path); err == nil {
			return path, stat, true
		}
	}
	return "", nil, false
}

func supported(name string) bool {
	_, err := info.ForPath(name, false)
	return err == nil
}
