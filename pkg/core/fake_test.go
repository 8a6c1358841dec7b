package core_test

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"testing"

	"github.com/aretw0/kana/pkg/core"
	"github.com/stretchr/testify/require"
)

var errMalformed = errors.New("malformed raw value")

// fakePost implements core.Post in memory and records every operation call.
type fakePost struct {
	id      core.ID
	content string

	mu    sync.Mutex
	calls map[core.Operation]int
	fail  error
	last  core.Params
}

func newFakePost(id core.ID, content string) *fakePost {
	return &fakePost{id: id, content: content, calls: make(map[core.Operation]int)}
}

func (p *fakePost) ID() core.ID { return p.id }

func (p *fakePost) Equal(other core.Post) bool {
	o, ok := other.(*fakePost)
	return ok && o.id == p.id && o.content == p.content
}

func (p *fakePost) String() string { return fmt.Sprintf("post(%d:%s)", p.id, p.content) }

func (p *fakePost) Calls(op core.Operation) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[op]
}

func (p *fakePost) record(op core.Operation, opts []core.Option) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[op]++
	p.last = core.ApplyOptions(opts...)
	return p.fail
}

func (p *fakePost) GetAll(_ context.Context, opts ...core.Option) error {
	return p.record(core.OpGetAll, opts)
}
func (p *fakePost) GetExtra(_ context.Context, opts ...core.Option) error {
	return p.record(core.OpGetExtra, opts)
}
func (p *fakePost) GetMedia(_ context.Context, opts ...core.Option) error {
	return p.record(core.OpGetMedia, opts)
}
func (p *fakePost) GetArtcom(_ context.Context, opts ...core.Option) error {
	return p.record(core.OpGetArtcom, opts)
}
func (p *fakePost) GetNotes(_ context.Context, opts ...core.Option) error {
	return p.record(core.OpGetNotes, opts)
}
func (p *fakePost) SetPaths(_ context.Context, opts ...core.Option) error {
	return p.record(core.OpSetPaths, opts)
}
func (p *fakePost) Write(_ context.Context, opts ...core.Option) error {
	return p.record(core.OpWrite, opts)
}
func (p *fakePost) Load(_ context.Context, opts ...core.Option) error {
	return p.record(core.OpLoad, opts)
}
func (p *fakePost) VerifyMedia(_ context.Context, opts ...core.Option) error {
	return p.record(core.OpVerifyMedia, opts)
}
func (p *fakePost) VerifyMediaByMD5(_ context.Context, opts ...core.Option) error {
	return p.record(core.OpVerifyMediaByMD5, opts)
}
func (p *fakePost) VerifyMediaByFilesize(_ context.Context, opts ...core.Option) error {
	return p.record(core.OpVerifyMediaByFilesize, opts)
}

// fakeBuilder understands core.Info, []core.Info and plain ids.
type fakeBuilder struct{}

func (fakeBuilder) Enumerate(raw any) iter.Seq2[core.Info, error] {
	return func(yield func(core.Info, error) bool) {
		switch v := raw.(type) {
		case core.Info:
			yield(v, nil)
		case []core.Info:
			for _, info := range v {
				if !yield(info, nil) {
					return
				}
			}
		case int:
			yield(core.Info{"id": v}, nil)
		default:
			yield(nil, fmt.Errorf("%w: %T", errMalformed, raw))
		}
	}
}

func (fakeBuilder) Build(raw any) (core.Post, error) {
	switch v := raw.(type) {
	case core.Info:
		id, err := v.ID()
		if err != nil {
			return nil, err
		}
		content, _ := v["content"].(string)
		return newFakePost(id, content), nil
	case int:
		return newFakePost(core.ID(v), ""), nil
	default:
		return nil, fmt.Errorf("%w: %T", errMalformed, raw)
	}
}

func desc(id int, content string) core.Info {
	return core.Info{"id": id, "content": content}
}

func newTestStore(t *testing.T, values ...any) *core.Store {
	t.Helper()
	s, err := core.NewStore(context.Background(), core.StoreConfig{Builder: fakeBuilder{}}, values...)
	require.NoError(t, err)
	return s
}
