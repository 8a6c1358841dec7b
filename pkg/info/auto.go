// Package info turns raw user input into post descriptors (core.Info).
package info

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/kana/pkg/core"
	"github.com/bmatcuk/doublestar/v4"
)

// Common errors.
var (
	ErrUnsupported   = errors.New("unsupported raw value")
	ErrMalformed     = errors.New("malformed post info")
	ErrUnknownFormat = errors.New("unknown info file format")
	ErrNoMatch       = errors.New("no info file matches")
)

// FromAuto yields one info per post described by raw.
//
// Accepted values:
//   - core.Info or map[string]any: a single post;
//   - core.ID, int, int64: a post known only by its id;
//   - string: an id, a comma separated id list, or a path / doublestar glob
//     of info files (.json, .yaml, .yml);
//   - []byte or io.Reader: a YAML (or JSON) stream of mappings or lists of mappings;
//   - slices of any of the above.
//
// Every yielded info carries an "id". The sequence stops after the first error.
func FromAuto(raw any) iter.Seq2[core.Info, error] {
	return func(yield func(core.Info, error) bool) {
		walk(raw, yield)
	}
}

// walk yields the infos of raw and reports whether iteration should continue.
func walk(raw any, yield func(core.Info, error) bool) bool {
	switch v := raw.(type) {
	case core.Info:
		return emit(v, yield)
	case map[string]any:
		return emit(core.Info(v), yield)
	case core.ID:
		return yield(core.Info{"id": v}, nil)
	case int:
		return yield(core.Info{"id": core.ID(v)}, nil)
	case int64:
		return yield(core.Info{"id": core.ID(v)}, nil)
	case string:
		return walkString(v, yield)
	case []byte:
		return walkReader(bytes.NewReader(v), yield)
	case io.Reader:
		return walkReader(v, yield)
	case []core.Info:
		return walkSlice(v, yield)
	case []map[string]any:
		return walkSlice(v, yield)
	case []core.ID:
		return walkSlice(v, yield)
	case []int:
		return walkSlice(v, yield)
	case []string:
		return walkSlice(v, yield)
	case []any:
		return walkSlice(v, yield)
	default:
		return yield(nil, fmt.Errorf("%w: %T", ErrUnsupported, raw))
	}
}

func walkSlice[T any](items []T, yield func(core.Info, error) bool) bool {
	for _, item := range items {
		if !walk(item, yield) {
			return false
		}
	}
	return true
}

func emit(i core.Info, yield func(core.Info, error) bool) bool {
	if _, err := i.ID(); err != nil {
		return yield(nil, fmt.Errorf("%w: %w", ErrMalformed, err))
	}
	return yield(i, nil)
}

func walkString(s string, yield func(core.Info, error) bool) bool {
	s = strings.TrimSpace(s)
	if ids, ok := parseIDList(s); ok {
		for _, id := range ids {
			if !yield(core.Info{"id": id}, nil) {
				return false
			}
		}
		return true
	}
	return walkGlob(s, yield)
}

// parseIDList recognizes "123" and "1, 2,3".
func parseIDList(s string) ([]core.ID, bool) {
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, ",")
	ids := make([]core.ID, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, false
		}
		ids = append(ids, core.ID(n))
	}
	return ids, true
}

func walkGlob(pattern string, yield func(core.Info, error) bool) bool {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return yield(nil, fmt.Errorf("invalid pattern %q: %w", pattern, err))
	}
	matches = slices.DeleteFunc(matches, func(path string) bool {
		_, err := ForPath(path, true)
		return err != nil
	})
	if len(matches) == 0 {
		return yield(nil, fmt.Errorf("%w: %q", ErrNoMatch, pattern))
	}

	for _, path := range matches {
		infos, err := ReadFile(path)
		if err != nil {
			return yield(nil, err)
		}
		for _, i := range infos {
			if !emit(i, yield) {
				return false
			}
		}
	}
	return true
}

func walkReader(r io.Reader, yield func(core.Info, error) bool) bool {
	infos, err := NewYAMLSerializer().Parse(r)
	if err != nil {
		return yield(nil, fmt.Errorf("%w: %w", ErrMalformed, err))
	}
	for _, i := range infos {
		if !emit(i, yield) {
			return false
		}
	}
	return true
}

// ReadFile parses an info file, choosing the serializer from its extension.
func ReadFile(path string) ([]core.Info, error) {
	s, err := ForPath(path, true)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	infos, err := s.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return infos, nil
}
