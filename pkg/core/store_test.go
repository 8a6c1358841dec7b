package core_test

import (
	"context"
	"testing"

	"github.com/aretw0/kana/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Raw Values And Posts", func(t *testing.T) {
		existing := newFakePost(9, "kept")
		s := newTestStore(t, desc(1, "a"), []core.Info{desc(2, "b"), desc(3, "c")}, existing, 4)

		assert.Equal(t, []core.ID{1, 2, 3, 9, 4}, s.Keys())
		got, ok := s.Get(9)
		require.True(t, ok)
		assert.Same(t, existing, got)
	})

	t.Run("Duplicate IDs Last Write Wins", func(t *testing.T) {
		s := newTestStore(t, desc(1, "old"), desc(1, "new"))

		assert.Equal(t, 1, s.Len())
		got, _ := s.Get(1)
		assert.True(t, got.Equal(newFakePost(1, "new")))
	})

	t.Run("Builder Errors Propagate", func(t *testing.T) {
		_, err := core.NewStore(ctx, core.StoreConfig{Builder: fakeBuilder{}}, desc(1, "a"), 3.5)
		assert.ErrorIs(t, err, errMalformed)
	})

	t.Run("Missing ID", func(t *testing.T) {
		_, err := core.NewStore(ctx, core.StoreConfig{Builder: fakeBuilder{}}, core.Info{"content": "x"})
		assert.ErrorIs(t, err, core.ErrMissingID)
	})

	t.Run("Raw Value Without Builder", func(t *testing.T) {
		_, err := core.NewStore(ctx, core.StoreConfig{}, desc(1, "a"))
		assert.ErrorIs(t, err, core.ErrNoBuilder)

		s, err := core.NewStore(ctx, core.StoreConfig{}, newFakePost(1, "a"))
		require.NoError(t, err)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("Eager Load", func(t *testing.T) {
		p1, p2 := newFakePost(1, "a"), newFakePost(2, "b")
		_, err := core.NewStore(ctx, core.StoreConfig{EagerLoad: true}, p1, p2)
		require.NoError(t, err)

		assert.Equal(t, 1, p1.Calls(core.OpGetAll))
		assert.Equal(t, 1, p2.Calls(core.OpGetAll))
	})

	t.Run("Lazy By Default", func(t *testing.T) {
		p := newFakePost(1, "a")
		newTestStore(t, p)
		assert.Zero(t, p.Calls(core.OpGetAll))
	})
}

func TestStore_Union(t *testing.T) {
	a := newTestStore(t, desc(1, "a1"), desc(2, "a2"))
	b := newTestStore(t, desc(2, "b2"), desc(3, "b3"))

	u, err := a.Union(b)
	require.NoError(t, err)

	assert.Equal(t, 3, u.Len())
	assert.LessOrEqual(t, u.Len(), a.Len()+b.Len())
	assert.Equal(t, []core.ID{1, 2, 3}, u.Keys())

	got, _ := u.Get(2)
	want, _ := b.Get(2)
	assert.Same(t, want, got, "right operand wins on collision")

	// Operands are untouched.
	assert.Equal(t, 2, a.Len())
	stale, _ := a.Get(2)
	assert.True(t, stale.Equal(newFakePost(2, "a2")))

	t.Run("Disjoint Cardinality", func(t *testing.T) {
		c := newTestStore(t, desc(7, "c"))
		u, err := a.Union(c)
		require.NoError(t, err)
		assert.Equal(t, a.Len()+c.Len(), u.Len())
	})

	t.Run("Disjoint Key Sets Commute", func(t *testing.T) {
		c := newTestStore(t, desc(7, "c"), desc(8, "d"))
		ac, err := a.Union(c)
		require.NoError(t, err)
		ca, err := c.Union(a)
		require.NoError(t, err)

		assert.ElementsMatch(t, ac.Keys(), ca.Keys())
		assert.NotEqual(t, ac.Keys(), ca.Keys(), "iteration order follows operand order")
	})

	t.Run("Raw Operand", func(t *testing.T) {
		u, err := a.Union(desc(5, "raw"))
		require.NoError(t, err)
		assert.Equal(t, []core.ID{1, 2, 5}, u.Keys())
	})

	t.Run("Raw Operand Error", func(t *testing.T) {
		_, err := a.Union("nope")
		assert.ErrorIs(t, err, errMalformed)
	})
}

func TestStore_UnionInPlace(t *testing.T) {
	a := newTestStore(t, desc(1, "a1"))
	snapshot := a.Copy()

	require.NoError(t, a.UnionInPlace(newTestStore(t, desc(1, "b1"), desc(2, "b2"))))

	assert.Equal(t, []core.ID{1, 2}, a.Keys())
	got, _ := a.Get(1)
	assert.True(t, got.Equal(newFakePost(1, "b1")))
	assert.Equal(t, 1, snapshot.Len())
}

func TestStore_Merge(t *testing.T) {
	a := newTestStore(t, desc(1, "a1"), desc(2, "a2"))
	b := newTestStore(t, desc(2, "b2"), desc(3, "b3"))
	c := newTestStore(t, desc(3, "c3"), desc(4, "c4"))

	sequential, err := a.Union(b)
	require.NoError(t, err)
	sequential, err = sequential.Union(c)
	require.NoError(t, err)

	require.NoError(t, a.Merge(b, c))

	assert.True(t, a.Equal(sequential))
	assert.Equal(t, sequential.Keys(), a.Keys())
	got, _ := a.Get(3)
	assert.True(t, got.Equal(newFakePost(3, "c3")), "later arguments win")

	t.Run("Error Aborts", func(t *testing.T) {
		s := newTestStore(t, desc(1, "a"))
		err := s.Merge(desc(2, "b"), 1.5)
		assert.ErrorIs(t, err, errMalformed)
	})
}

func TestStore_Difference(t *testing.T) {
	a := newTestStore(t, desc(1, "a1"), desc(2, "a2"), desc(3, "a3"))
	b := newTestStore(t, desc(2, "other"), desc(9, "absent"))

	d, err := a.Difference(b)
	require.NoError(t, err)

	assert.Equal(t, []core.ID{1, 3}, d.Keys())
	for _, id := range b.Keys() {
		_, ok := d.Get(id)
		assert.False(t, ok)
	}
	assert.Equal(t, 3, a.Len())

	t.Run("Self Difference Is Empty", func(t *testing.T) {
		empty, err := a.Difference(a)
		require.NoError(t, err)
		assert.Zero(t, empty.Len())
		assert.True(t, empty.Equal(newTestStore(t)))
	})

	t.Run("In Place", func(t *testing.T) {
		s := a.Copy()
		require.NoError(t, s.DifferenceInPlace(1))
		assert.Equal(t, []core.ID{2, 3}, s.Keys())
		assert.Equal(t, 3, a.Len())
	})
}

func TestStore_Subtract(t *testing.T) {
	s := newTestStore(t, desc(1, "a"), desc(2, "b"), desc(3, "c"), desc(4, "d"))

	require.NoError(t, s.Subtract(newTestStore(t, desc(1, "x")), 3, 42))
	assert.Equal(t, []core.ID{2, 4}, s.Keys())

	// Removing absent keys is a no-op.
	require.NoError(t, s.Subtract(1, 3))
	assert.Equal(t, []core.ID{2, 4}, s.Keys())

	require.NoError(t, s.Subtract(s))
	assert.Zero(t, s.Len())
}

func TestStore_Set(t *testing.T) {
	s := newTestStore(t, desc(1, "a"))

	t.Run("Normalizes Raw Values", func(t *testing.T) {
		require.NoError(t, s.Set(2, desc(2, "b")))
		got, ok := s.Get(2)
		require.True(t, ok)
		assert.IsType(t, &fakePost{}, got)
	})

	t.Run("Explicit Key Wins", func(t *testing.T) {
		require.NoError(t, s.Set(10, desc(11, "mismatch")))
		got, ok := s.Get(10)
		require.True(t, ok)
		assert.Equal(t, core.ID(11), got.ID())
		_, ok = s.Get(11)
		assert.False(t, ok)
	})

	t.Run("Overwrite Keeps Position", func(t *testing.T) {
		require.NoError(t, s.Set(1, newFakePost(1, "z")))
		assert.Equal(t, core.ID(1), s.Keys()[0])
		got, _ := s.Get(1)
		assert.True(t, got.Equal(newFakePost(1, "z")))
	})

	t.Run("Unconvertible Value", func(t *testing.T) {
		err := s.Set(5, struct{}{})
		assert.ErrorIs(t, err, errMalformed)
		_, ok := s.Get(5)
		assert.False(t, ok)
	})
}

func TestStore_SetDefault(t *testing.T) {
	s := newTestStore(t, desc(1, "a"))

	t.Run("Lookup Without Default", func(t *testing.T) {
		p, ok, err := s.SetDefault(1, nil)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, core.ID(1), p.ID())

		p, ok, err = s.SetDefault(2, nil)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, p)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("Creates Then Ignores Default", func(t *testing.T) {
		first, ok, err := s.SetDefault(3, desc(3, "first"))
		require.NoError(t, err)
		require.True(t, ok)

		second, ok, err := s.SetDefault(3, desc(3, "second"))
		require.NoError(t, err)
		require.True(t, ok)

		assert.Same(t, first, second)
		assert.True(t, second.Equal(newFakePost(3, "first")))
	})

	t.Run("Build Error", func(t *testing.T) {
		_, ok, err := s.SetDefault(4, 2.5)
		assert.ErrorIs(t, err, errMalformed)
		assert.False(t, ok)
	})
}

func TestStore_Equal(t *testing.T) {
	a := newTestStore(t, desc(1, "a"), desc(2, "b"))

	tests := []struct {
		name  string
		other *core.Store
		want  bool
	}{
		{"Reflexive", a, true},
		{"Same Content Other Order", newTestStore(t, desc(2, "b"), desc(1, "a")), true},
		{"Different Cardinality", newTestStore(t, desc(1, "a")), false},
		{"Superset", newTestStore(t, desc(1, "a"), desc(2, "b"), desc(3, "c")), false},
		{"Same Size Different Keys", newTestStore(t, desc(1, "a"), desc(3, "b")), false},
		{"Same Keys Different Content", newTestStore(t, desc(1, "a"), desc(2, "changed")), false},
		{"Nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Equal(tt.other))
			if tt.other != nil {
				assert.Equal(t, tt.want, tt.other.Equal(a), "symmetry")
			}
		})
	}
}

func TestStore_Copy(t *testing.T) {
	a := newTestStore(t, desc(1, "a"), desc(2, "b"))
	c := a.Copy()

	assert.True(t, c.Equal(a))
	require.NoError(t, c.Set(3, desc(3, "new")))
	require.NoError(t, c.Subtract(1))

	_, ok := a.Get(3)
	assert.False(t, ok, "copy must not alias the original mapping")
	assert.Equal(t, []core.ID{1, 2}, a.Keys())

	// Posts themselves are shared.
	pa, _ := a.Get(2)
	pc, _ := c.Get(2)
	assert.Same(t, pa, pc)
}

func TestStore_ExampleScenario(t *testing.T) {
	a := newTestStore(t, desc(1, "one"), desc(2, "two"))
	b := newTestStore(t, desc(2, "two-updated"), desc(3, "three"))

	u, err := a.Union(b)
	require.NoError(t, err)

	assert.Equal(t, 3, u.Len())
	got, _ := u.Get(2)
	fromB, _ := b.Get(2)
	fromA, _ := a.Get(2)
	assert.True(t, got.Equal(fromB))
	assert.False(t, got.Equal(fromA))
}

func TestStore_String(t *testing.T) {
	s := newTestStore(t, desc(1, "a"), desc(2, "b"))
	assert.Equal(t, "PostStore{1: post(1:a), 2: post(2:b)}", s.String())
}

func TestStore_State(t *testing.T) {
	s := newTestStore(t, desc(1, "a"))
	state, ok := s.State().(core.StoreState)
	require.True(t, ok)
	assert.Equal(t, 1, state.Size)
	assert.True(t, state.HasBuilder)
	assert.Len(t, state.Operations, 11)
	assert.Equal(t, "post-store", s.ComponentType())
}

func TestStore_NilOperand(t *testing.T) {
	var none *core.Store
	s := newTestStore(t, desc(1, "a"), desc(2, "b"))

	u, err := s.Union(none)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{1, 2}, u.Keys())

	d, err := s.Difference(none)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{1, 2}, d.Keys())

	require.NoError(t, s.UnionInPlace(none))
	require.NoError(t, s.DifferenceInPlace(none))
	require.NoError(t, s.Merge(none))
	require.NoError(t, s.Subtract(none))
	assert.Equal(t, []core.ID{1, 2}, s.Keys())

	assert.False(t, s.Equal(none))
}
