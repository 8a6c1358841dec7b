package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Size       int      `json:"size"`
	Workers    int      `json:"workers"`
	EagerLoad  bool     `json:"eager_load"`
	HasBuilder bool     `json:"has_builder"`
	Operations []string `json:"operations"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	ops := make([]string, 0, len(operations))
	for _, op := range Operations() {
		ops = append(ops, op.String())
	}

	return StoreState{
		Size:       s.Len(),
		Workers:    s.cfg.Workers,
		EagerLoad:  s.cfg.EagerLoad,
		HasBuilder: s.cfg.Builder != nil,
		Operations: ops,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "post-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
