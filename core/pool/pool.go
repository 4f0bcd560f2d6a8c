package pool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool bounds the number of goroutines used to run independent jobs.
// A nil *Pool is valid and runs every job on a single goroutine.
type Pool struct {
	workers int
}

// NewPool creates a pool running at most count jobs at a time.
// If count <= 0, runtime.NumCPU() is used.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}
	return &Pool{
		workers: count,
	}
}

// Workers returns the maximum number of concurrent jobs.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}

// Parallelize calls f(ctx, i) for every i in [0, count) and waits for all of
// them. The first error cancels the context handed to the other jobs and is
// returned. If ctx is done before every job was started, ctx.Err() is returned;
// once every job has run to completion, a later cancellation is ignored.
func (p *Pool) Parallelize(ctx context.Context, count int, f func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers())

	started := 0
	for ; started < count; started++ {
		if gctx.Err() != nil {
			break
		}
		i := started
		g.Go(func() error {
			return f(gctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if started < count {
		return ctx.Err()
	}
	return nil
}
