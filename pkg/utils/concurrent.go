package utils

import (
	"fmt"
	"sync"
)

// ParallelMap applies fn to every item with bounded concurrency and
// returns the results in input order. The first error wins; remaining
// items still run to completion.
func ParallelMap[T any, R any](items []T, maxConcurrent int, fn func(T) (R, error)) ([]R, error) {
	if maxConcurrent <= 0 {
		maxConcurrent = len(items)
		if maxConcurrent == 0 {
			maxConcurrent = 1
		}
	}

	results := make([]R, len(items))
	errs := make([]error, len(items))

	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(index int, item T) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[index], errs[index] = fn(item)
		}(i, item)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return results, nil
}
