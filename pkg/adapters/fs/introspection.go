package fs

import (
	"context"

	"github.com/aretw0/introspection"
)

// ArchiveState exposes internal state for observability.
type ArchiveState struct {
	Path    string `json:"path"`
	Posts   int    `json:"posts"`
	Indexed int    `json:"indexed"`
}

// State implements introspection.Introspectable.
func (a *Archive) State() any {
	ids, _ := a.IDs(context.Background())
	state := ArchiveState{
		Path:  a.Path,
		Posts: len(ids),
	}
	if a.cache != nil {
		state.Indexed = a.cache.Len()
	}
	return state
}

// ComponentType implements introspection.Component.
func (a *Archive) ComponentType() string {
	return "archive"
}

var _ introspection.Introspectable = (*Archive)(nil)
var _ introspection.Component = (*Archive)(nil)
