// Package workerpool runs bounded fan-out/fan-in jobs whose results keep the
// order of their inputs.
package workerpool

import (
	"context"
	"sync"
)

// Result pairs a job's value with its error, at the index of its input.
type Result[R any] struct {
	Value R
	Err   error
}

// RunOrdered applies fn to every item with at most concurrency jobs in
// flight. Items not yet started when ctx is cancelled report ctx.Err().
func RunOrdered[T any, R any](ctx context.Context, items []T, concurrency int, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(items) {
		concurrency = len(items)
	}

	sem := make(chan struct{}, concurrency)
	results := make([]Result[R], len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i] = Result[R]{Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()
			v, err := fn(ctx, item)
			results[i] = Result[R]{Value: v, Err: err}
		}(i, item)
	}
	wg.Wait()
	return results
}

// Errors returns the non-nil errors from results, in input order.
func Errors[R any](results []Result[R]) []error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}
