package fs

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/kana/pkg/core"
)

// Archive directories, relative to the archive root.
const (
	InfoDir   = "info"
	ArtcomDir = "artcom"
	NotesDir  = "notes"
	MediaDir  = "media"
)

// SystemDir is the hidden directory holding archive metadata, such as the info index.
const SystemDir = ".kana"

// DefaultFormat is the info file format used when none is configured.
const DefaultFormat = ".json"

// Layout computes where each part of a post lives inside an archive:
//
//	<root>/info/<id><format>
//	<root>/artcom/<id><format>
//	<root>/notes/<id><format>
//	<root>/media/<id>.<file_ext>
type Layout struct {
	Root   string
	Format string
}

// NewLayout returns a layout rooted at root. An empty format means DefaultFormat.
func NewLayout(root, format string) Layout {
	if format == "" {
		format = DefaultFormat
	}
	if !strings.HasPrefix(format, ".") {
		format = "." + format
	}
	return Layout{Root: root, Format: format}
}

// Info returns the info file path of id.
func (l Layout) Info(id core.ID) string {
	return filepath.Join(l.Root, InfoDir, id.String()+l.Format)
}

// Artcom returns the artist commentary file path of id.
func (l Layout) Artcom(id core.ID) string {
	return filepath.Join(l.Root, ArtcomDir, id.String()+l.Format)
}

// Notes returns the notes file path of id.
func (l Layout) Notes(id core.ID) string {
	return filepath.Join(l.Root, NotesDir, id.String()+l.Format)
}

// Media returns the media file path of id. ext may carry a leading dot.
func (l Layout) Media(id core.ID, ext string) string {
	name := id.String()
	if ext = strings.TrimPrefix(ext, "."); ext != "" {
		name += "." + ext
	}
	return filepath.Join(l.Root, MediaDir, name)
}

// IDFromPath extracts the post id from a file named "<id>.<ext>".
func IDFromPath(path string) (core.ID, bool) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	n, err := strconv.ParseInt(stem, 10, 64)
	if err != nil {
		return 0, false
	}
	return core.ID(n), true
}
