// Package workerpool runs bounded concurrent work over a slice.
package workerpool

import (
	"context"
	"errors"
	"sync"
)

// Process runs process for every item on at most workerCount goroutines.
// A failing item does not stop the others: every failure is joined into the
// returned error. Items not handed out before ctx is done are skipped and the
// context error is included in the result.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
) error {
	if workerCount <= 0 {
		workerCount = 1
	}
	workerCount = min(workerCount, len(items))

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	tasks := make(chan T)
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if err := process(ctx, item); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case tasks <- item:
		}
	}
	close(tasks)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
