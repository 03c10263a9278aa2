package concurrency

import (
	"context"
	"sync"
)

const defaultWorkers = 10

// Map runs fn over every item using at most maxWorkers goroutines.
// Results come back in input order; errors are collected, not fail-fast.
// A canceled context stops workers from picking up new items.
func Map[T any, R any](
	ctx context.Context,
	items []T,
	maxWorkers int,
	fn func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	if len(items) == 0 {
		return []R{}, nil
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultWorkers
	}
	if maxWorkers > len(items) {
		maxWorkers = len(items)
	}

	type outcome struct {
		index  int
		result R
		err    error
	}

	jobs := make(chan int, len(items))
	results := make(chan outcome, len(items))

	var wg sync.WaitGroup
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
					r, err := fn(ctx, i, items[i])
					results <- outcome{index: i, result: r, err: err}
				}
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]R, len(items))
	var errs []error
	for res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
		}
		out[res.index] = res.result
	}
	return out, errs
}

// ForEach is Map without result collection, for side-effect-only work.
func ForEach[T any](
	ctx context.Context,
	items []T,
	maxWorkers int,
	fn func(ctx context.Context, index int, item T) error,
) []error {
	_, errs := Map(ctx, items, maxWorkers, func(ctx context.Context, i int, item T) (struct{}, error) {
		return struct{}{}, fn(ctx, i, item)
	})
	return errs
}
