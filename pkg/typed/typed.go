// Package typed offers type-safe views over post infos.
package typed

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/aretw0/kana/pkg/core"
)

// Model is a typed view of a post info.
type Model[T any] struct {
	ID   core.ID
	Data T
}

// Described is a post able to expose its info.
type Described interface {
	core.Post
	Info() core.Info
}

// Decode converts an info into a typed model.
func Decode[T any](info core.Info) (*Model[T], error) {
	id, err := info.ID()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("info marshal failed: %w", err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal to target type failed: %w", err)
	}
	return &Model[T]{ID: id, Data: v}, nil
}

// Encode converts a typed model back into an info. The model ID always
// overrides any "id" field of the data.
func Encode[T any](m *Model[T]) (core.Info, error) {
	data, err := json.Marshal(m.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal typed data: %w", err)
	}

	info := core.Info{}
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to convert typed data to info: %w", err)
	}
	info["id"] = int64(m.ID)
	return info, nil
}

// Posts iterates over the posts of s as typed models, in store order.
// Posts that do not expose their info yield an error.
func Posts[T any](s *core.Store) iter.Seq2[*Model[T], error] {
	return func(yield func(*Model[T], error) bool) {
		for id, p := range s.All() {
			d, ok := p.(Described)
			if !ok {
				if !yield(nil, fmt.Errorf("post %s does not expose its info", id)) {
					return
				}
				continue
			}
			m, err := Decode[T](d.Info())
			if err != nil {
				err = fmt.Errorf("failed to process post %s: %w", id, err)
			}
			if !yield(m, err) {
				return
			}
		}
	}
}
