// Package batch runs a set of tasks concurrently and collects their results
// in submission order. The CLI uses it to fetch several URLs at once while
// keeping the printed output deterministic.
package batch

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// New creates a batch bound to ctx. The returned context is canceled when
// any task fails, same as errgroup.
func New[R any](ctx context.Context) (*Batch[R], context.Context) {
	eg, ctx := errgroup.WithContext(ctx)
	return &Batch[R]{eg: eg}, ctx
}

// Batch collects results from concurrent tasks, indexed by submission order.
type Batch[R any] struct {
	eg      *errgroup.Group
	mu      sync.Mutex
	results []R
}

// Limit caps how many tasks run at once. Must be called before Go.
func (b *Batch[R]) Limit(n int) {
	b.eg.SetLimit(n)
}

// Go submits a task. Its result lands in the slot reserved at submission
// time, so Wait returns results in the order tasks were submitted.
func (b *Batch[R]) Go(fn func() (R, error)) {
	b.mu.Lock()
	i := len(b.results)
	b.results = append(b.results, *new(R))
	b.mu.Unlock()

	b.eg.Go(func() error {
		result, err := fn()
		if err != nil {
			return err
		}
		b.mu.Lock()
		b.results[i] = result
		b.mu.Unlock()
		return nil
	})
}

// Wait blocks until every task finishes, returning the first error if any
// failed, otherwise the results in submission order.
func (b *Batch[R]) Wait() ([]R, error) {
	if err := b.eg.Wait(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.results, nil
}
