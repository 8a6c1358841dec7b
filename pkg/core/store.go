package core

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// StoreConfig holds the collaborators and knobs shared by a Store and every
// store derived from it (copies, unions, differences).
type StoreConfig struct {
	// Builder normalizes raw values into posts. Required for any raw input.
	Builder Builder
	// EagerLoad broadcasts GetAll once the store is populated by NewStore.
	EagerLoad bool
	// Workers bounds parallel broadcasts. Zero or one means sequential.
	Workers int
	Logger  *slog.Logger
}

// Store is an insertion-ordered collection of posts keyed by ID.
//
// Every stored value is a Post: raw values are always converted through the
// configured Builder first. A Store is not safe for concurrent use.
type Store struct {
	cfg   StoreConfig
	order []ID
	posts map[ID]Post
}

// NewStore creates a store seeded with values. Each value is either a Post,
// stored under its own ID, or a raw value enumerated by the Builder.
func NewStore(ctx context.Context, cfg StoreConfig, values ...any) (*Store, error) {
	s := newStore(cfg, nil, nil)

	for _, value := range values {
		if p, ok := value.(Post); ok {
			s.put(p.ID(), p)
			continue
		}
		if err := s.addRaw(value); err != nil {
			return nil, err
		}
	}

	if cfg.EagerLoad {
		if err := s.GetAll(ctx); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// newStore is the fast path over an already valid mapping. It performs no
// normalization; order and posts are adopted as-is.
func newStore(cfg StoreConfig, order []ID, posts map[ID]Post) *Store {
	if posts == nil {
		posts = make(map[ID]Post)
	}
	return &Store{cfg: cfg, order: order, posts: posts}
}

func (s *Store) addRaw(value any) error {
	if s.cfg.Builder == nil {
		return ErrNoBuilder
	}
	for info, err := range s.cfg.Builder.Enumerate(value) {
		if err != nil {
			return err
		}
		id, err := info.ID()
		if err != nil {
			return err
		}
		p, err := s.cfg.Builder.Build(info)
		if err != nil {
			return err
		}
		s.put(id, p)
	}
	return nil
}

// put stores p under id, keeping the original position on overwrite.
func (s *Store) put(id ID, p Post) {
	if _, ok := s.posts[id]; !ok {
		s.order = append(s.order, id)
	}
	s.posts[id] = p
}

func (s *Store) remove(ids map[ID]struct{}) {
	if len(ids) == 0 {
		return
	}
	s.order = slices.DeleteFunc(s.order, func(id ID) bool {
		_, ok := ids[id]
		return ok
	})
	for id := range ids {
		delete(s.posts, id)
	}
}

// coerce converts an operand of the set operations into a Store.
// A nil *Store is an empty store.
func (s *Store) coerce(value any) (*Store, error) {
	if other, ok := value.(*Store); ok {
		if other == nil {
			return newStore(s.cfg, nil, nil), nil
		}
		return other, nil
	}
	return NewStore(context.Background(), StoreConfig{Builder: s.cfg.Builder, Logger: s.cfg.Logger}, value)
}

// --- Lookup ---

// Len returns the number of posts.
func (s *Store) Len() int {
	return len(s.posts)
}

// Keys returns the IDs in insertion order.
func (s *Store) Keys() []ID {
	return slices.Clone(s.order)
}

// Get returns the post stored under id.
func (s *Store) Get(id ID) (Post, bool) {
	p, ok := s.posts[id]
	return p, ok
}

// All iterates over the posts in insertion order.
func (s *Store) All() iter.Seq2[ID, Post] {
	return func(yield func(ID, Post) bool) {
		for _, id := range s.order {
			if !yield(id, s.posts[id]) {
				return
			}
		}
	}
}

// --- Assignment ---

// Set stores value under id, converting it to a Post first when needed.
// The given id is used as key even if the post reports another one.
func (s *Store) Set(id ID, value any) error {
	p, err := s.build(value)
	if err != nil {
		return err
	}
	s.put(id, p)
	return nil
}

// SetDefault returns the post stored under id. When it is absent and def is
// non-nil, a post is built from def, stored and returned. The boolean is
// false only when nothing is (or gets) stored under id.
func (s *Store) SetDefault(id ID, def any) (Post, bool, error) {
	if p, ok := s.posts[id]; ok || def == nil {
		return p, ok, nil
	}
	p, err := s.build(def)
	if err != nil {
		return nil, false, err
	}
	s.put(id, p)
	return p, true, nil
}

func (s *Store) build(value any) (Post, error) {
	if p, ok := value.(Post); ok {
		return p, nil
	}
	if s.cfg.Builder == nil {
		return nil, ErrNoBuilder
	}
	return s.cfg.Builder.Build(value)
}

// --- Merges ---

// Union returns a new store with the posts of s, then those of value.
// On collision the right-hand post wins.
func (s *Store) Union(value any) (*Store, error) {
	other, err := s.coerce(value)
	if err != nil {
		return nil, err
	}
	out := s.Copy()
	out.update(other)
	return out, nil
}

// UnionInPlace replaces s by s.Union(value).
func (s *Store) UnionInPlace(value any) error {
	out, err := s.Union(value)
	if err != nil {
		return err
	}
	*s = *out
	return nil
}

// Merge adds the posts of every value to s, in argument order.
func (s *Store) Merge(values ...any) error {
	for _, value := range values {
		other, err := s.coerce(value)
		if err != nil {
			return err
		}
		s.update(other)
	}
	return nil
}

func (s *Store) update(other *Store) {
	for id, p := range other.All() {
		s.put(id, p)
	}
}

// --- Removals ---

// Difference returns a new store with the posts of s whose ID is absent from value.
func (s *Store) Difference(value any) (*Store, error) {
	other, err := s.coerce(value)
	if err != nil {
		return nil, err
	}
	out := s.Copy()
	out.remove(other.idSet())
	return out, nil
}

// DifferenceInPlace replaces s by s.Difference(value).
func (s *Store) DifferenceInPlace(value any) error {
	out, err := s.Difference(value)
	if err != nil {
		return err
	}
	*s = *out
	return nil
}

// Subtract removes from s the IDs of every value. Absent IDs are ignored.
func (s *Store) Subtract(values ...any) error {
	for _, value := range values {
		other, err := s.coerce(value)
		if err != nil {
			return err
		}
		s.remove(other.idSet())
	}
	return nil
}

func (s *Store) idSet() map[ID]struct{} {
	set := make(map[ID]struct{}, len(s.posts))
	for id := range s.posts {
		set[id] = struct{}{}
	}
	return set
}

// --- Comparison, copy, display ---

// Equal reports whether both stores hold equal posts under the same IDs.
// Order is not significant.
func (s *Store) Equal(other *Store) bool {
	if other == nil || s.Len() != other.Len() {
		return false
	}
	// Equal cardinality plus left keys all found on the right means equal key sets.
	for id, p := range s.posts {
		o, ok := other.posts[id]
		if !ok || !p.Equal(o) {
			return false
		}
	}
	return true
}

// Copy returns a store with its own mapping over the same Post instances.
func (s *Store) Copy() *Store {
	return newStore(s.cfg, slices.Clone(s.order), maps.Clone(s.posts))
}

// String renders the store for debugging.
func (s *Store) String() string {
	var b strings.Builder
	b.WriteString("PostStore{")
	for i, id := range s.order {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", id, s.posts[id])
	}
	b.WriteString("}")
	return b.String()
}
