// Package lifecycle exposes archive events as a lifecycle.Source.
package lifecycle

import (
	"context"
	"slices"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/kana/pkg/core"
)

// Option configures the archive event source.
type Option func(*archiveSource)

// WithTypes forwards only events of the given types. No types means all.
func WithTypes(types ...core.EventType) Option {
	return func(s *archiveSource) {
		s.types = types
	}
}

type archiveSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	types  []core.EventType
	// last is the latest event forwarded per post.
	last map[core.ID]core.Event
}

// NewSource creates a lifecycle.Source that emits archive events.
//
// A single save usually produces a burst of filesystem notifications, so an
// event repeating the type and second of the last one forwarded for the
// same post is dropped.
func NewSource(events <-chan core.Event, opts ...Option) lifecycle.Source {
	s := &archiveSource{
		events: events,
		out:    make(chan lifecycle.Event),
		last:   make(map[core.ID]core.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *archiveSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until ctx is done or the archive channel closes,
// then closes Events.
func (s *archiveSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if !s.accept(e) {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

// accept reports whether e is forwarded, recording it when it is.
func (s *archiveSource) accept(e core.Event) bool {
	if len(s.types) > 0 && !slices.Contains(s.types, e.Type) {
		return false
	}
	if prev, ok := s.last[e.ID]; ok && prev == e {
		return false
	}
	s.last[e.ID] = e
	return true
}
