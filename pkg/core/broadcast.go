package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Map invokes op with opts on every post of the store.
//
// Posts are visited in insertion order, one at a time, and the first failure
// stops the broadcast. When the store is configured with more than one
// worker, posts run concurrently (bounded by Workers), every post is invoked
// exactly once and all failures are joined in the returned error.
func (s *Store) Map(ctx context.Context, op Operation, opts ...Option) error {
	fn, ok := operations[op]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}

	logger := s.logger()
	logger.Debug("broadcasting post operation", "op", op, "posts", s.Len(), "workers", s.cfg.Workers)

	if s.cfg.Workers > 1 {
		return s.mapParallel(ctx, op, fn, opts)
	}

	for id, p := range s.All() {
		if err := fn(p, ctx, opts...); err != nil {
			return &OpError{Op: op, ID: id, Err: err}
		}
	}
	return nil
}

func (s *Store) mapParallel(ctx context.Context, op Operation, fn postFunc, opts []Option) error {
	errs := make([]error, len(s.order))

	var g errgroup.Group
	g.SetLimit(s.cfg.Workers)

	i := 0
	for id, p := range s.All() {
		slot := i
		g.Go(func() error {
			if err := fn(p, ctx, opts...); err != nil {
				errs[slot] = &OpError{Op: op, ID: id, Err: err}
			}
			return nil
		})
		i++
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (s *Store) logger() *slog.Logger {
	if s.cfg.Logger != nil {
		return s.cfg.Logger
	}
	return slog.Default()
}

// GetAll broadcasts OpGetAll.
func (s *Store) GetAll(ctx context.Context, opts ...Option) error {
	return s.Map(ctx, OpGetAll, opts...)
}

// GetExtra broadcasts OpGetExtra.
func (s *Store) GetExtra(ctx context.Context, opts ...Option) error {
	return s.Map(ctx, OpGetExtra, opts...)
}

// GetMedia broadcasts OpGetMedia.
func (s *Store) GetMedia(ctx context.Context, opts ...Option) error {
	return s.Map(ctx, OpGetMedia, opts...)
}

// GetArtcom broadcasts OpGetArtcom.
func (s *Store) GetArtcom(ctx context.Context, opts ...Option) error {
	return s.Map(ctx, OpGetArtcom, opts...)
}

// GetNotes broadcasts OpGetNotes.
func (s *Store) GetNotes(ctx context.Context, opts ...Option) error {
	return s.Map(ctx, OpGetNotes, opts...)
}

// SetPaths broadcasts OpSetPaths.
func (s *Store) SetPaths(ctx context.Context, opts ...Option) error {
	return s.Map(ctx, OpSetPaths, opts...)
}

// Write broadcasts OpWrite.
func (s *Store) Write(ctx context.Context, opts ...Option) error {
	return s.Map(ctx, OpWrite, opts...)
}

// Load broadcasts OpLoad.
func (s *Store) Load(ctx context.Context, opts ...Option) error {
	return s.Map(ctx, OpLoad, opts...)
}

// VerifyMedia broadcasts OpVerifyMedia.
func (s *Store) VerifyMedia(ctx context.Context, opts ...Option) error {
	return s.Map(ctx, OpVerifyMedia, opts...)
}

// VerifyMediaByMD5 broadcasts OpVerifyMediaByMD5.
func (s *Store) VerifyMediaByMD5(ctx context.Context, opts ...Option) error {
	return s.Map(ctx, OpVerifyMediaByMD5, opts...)
}

// VerifyMediaByFilesize broadcasts OpVerifyMediaByFilesize.
func (s *Store) VerifyMediaByFilesize(ctx context.Context, opts ...Option) error {
	return s.Map(ctx, OpVerifyMediaByFilesize, opts...)
}
