package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// maxJoinConcurrency bounds the per-item lookups a single request fans out.
const maxJoinConcurrency = 16

// forEach runs fn for every index in [0, n) with at most
// maxJoinConcurrency calls in flight. The first error cancels the rest.
func forEach(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(maxJoinConcurrency)

	for i := 0; i < n; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			if werr := eg.Wait(); werr != nil {
				return werr
			}
			return fmt.Errorf("while acquiring concurrency limiter semaphore: %w", err)
		}
		eg.Go(func() error {
			defer sem.Release(1)
			return fn(ctx, i)
		})
	}
	return eg.Wait()
}
