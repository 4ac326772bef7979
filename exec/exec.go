// Package exec provides the blocking-worker executor the Pattern Validator
// runs on, keeping CPU-bound grammar compilation off the cooperative request
// handler.
//
// The bounded-pool default implementation follows theRebelliousNerd-codenerd's
// use of golang.org/x/sync/errgroup's SetLimit to cap concurrent workers,
// rather than hand-rolling a semaphore.
package exec

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BlockingExecutor runs a CPU-bound function off the caller's goroutine and
// returns its result once complete. Implementations must not hold any caller
// lock across Run; the caller is responsible for acquiring whatever state
// the function closure needs before calling Run.
type BlockingExecutor interface {
	// Run executes fn on a worker goroutine and blocks until it completes or
	// ctx is cancelled. If ctx is cancelled before fn completes, Run returns
	// ctx.Err(); fn itself continues running to completion and its result is
	// discarded, matching the cancellation semantics in the concurrency model.
	Run(ctx context.Context, fn func() any) (any, error)
}

// Pool is a BlockingExecutor backed by a bounded pool of worker goroutines.
// At most limit functions run at once; submissions beyond the limit wait for
// a free slot, following the SetLimit pattern for bounding concurrent work.
type Pool struct {
	group *errgroup.Group
}

// NewPool creates a Pool that runs at most limit blocking calls concurrently.
// A limit <= 0 means unlimited (errgroup's default, no SetLimit call).
func NewPool(limit int) *Pool {
	g := &errgroup.Group{}
	if limit > 0 {
		g.SetLimit(limit)
	}
	return &Pool{group: g}
}

// Run implements BlockingExecutor.
func (p *Pool) Run(ctx context.Context, fn func() any) (any, error) {
	resultCh := make(chan any, 1)

	go p.group.Go(func() error {
		resultCh <- fn()
		return nil
	})

	select {
	case result := <-resultCh:
		return result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Inline is a BlockingExecutor that runs fn synchronously on the calling
// goroutine. Useful for tests and for CLI batch mode, where there is no
// cooperative scheduler to keep responsive.
type Inline struct{}

// Run implements BlockingExecutor by calling fn directly.
func (Inline) Run(ctx context.Context, fn func() any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fn(), nil
}
