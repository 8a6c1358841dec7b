package info

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aretw0/kana/pkg/core"
	"gopkg.in/yaml.v3"
)

// Serializer defines how to read and write a specific info file format.
type Serializer interface {
	// Parse reads every post info found in r. A document may hold a single
	// mapping or a sequence of mappings.
	Parse(r io.Reader) ([]core.Info, error)
	// Serialize converts an info, or a list of infos, to bytes.
	Serialize(v any) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers, keyed by extension.
func DefaultSerializers(strict bool) map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(strict),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// ForPath picks the serializer matching the extension of path.
func ForPath(path string, strict bool) (Serializer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	s, ok := DefaultSerializers(strict)[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return s, nil
}

// --- JSON Serializer ---

// JSONSerializer handles JSON info files.
type JSONSerializer struct {
	// Strict decodes numbers as json.Number to avoid precision loss on large ids.
	Strict bool
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(strict bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict}
}

func (s *JSONSerializer) Parse(r io.Reader) ([]core.Info, error) {
	decoder := json.NewDecoder(r)
	if s.Strict {
		decoder.UseNumber()
	}

	var infos []core.Info
	for {
		var payload any
		err := decoder.Decode(&payload)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		found, err := toInfos(payload)
		if err != nil {
			return nil, err
		}
		infos = append(infos, found...)
	}
	return infos, nil
}

func (s *JSONSerializer) Serialize(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// --- YAML Serializer ---

// YAMLSerializer handles YAML info files, including multi-document streams.
// JSON being a YAML subset, it also reads JSON input.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) ([]core.Info, error) {
	decoder := yaml.NewDecoder(r)

	var infos []core.Info
	for {
		var payload any
		err := decoder.Decode(&payload)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid yaml: %w", err)
		}
		found, err := toInfos(payload)
		if err != nil {
			return nil, err
		}
		infos = append(infos, found...)
	}
	return infos, nil
}

func (s *YAMLSerializer) Serialize(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- Helpers ---

// toInfos flattens a decoded document into infos.
func toInfos(payload any) ([]core.Info, error) {
	switch v := payload.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []core.Info{core.Info(v)}, nil
	case []any:
		infos := make([]core.Info, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: item %d is %T, not a mapping", ErrMalformed, i, item)
			}
			infos = append(infos, core.Info(m))
		}
		return infos, nil
	default:
		return nil, fmt.Errorf("%w: document is %T, not a mapping", ErrMalformed, payload)
	}
}
