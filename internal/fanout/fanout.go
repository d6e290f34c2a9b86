// Package fanout runs independent tasks concurrently and restores submission
// order afterwards.
//
// Tasks complete in any order. Each one is tagged with its index when it is
// spawned, results are gathered as they arrive, and the gathered values are
// sorted by that index before Run returns.
package fanout

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Task computes the value for position i.
type Task[T any] func(ctx context.Context, i int) T

// JoinError reports a task that did not return a value.
type JoinError struct {
	Index int
	Cause any
}

func (e *JoinError) Error() string {
	return fmt.Sprintf("join task failed: task %d panicked: %v", e.Index, e.Cause)
}

type indexed[T any] struct {
	index int
	value T
	err   error
}

// Run spawns n tasks without a concurrency limit and waits for all of them.
// values holds the returned values ordered by index; a task that panicked has
// no value and instead contributes a *JoinError to errs, in completion order.
// A failing task never cancels its siblings.
func Run[T any](ctx context.Context, n int, task Task[T]) (values []T, errs []error) {
	if n <= 0 {
		return nil, nil
	}

	ch := make(chan indexed[T], n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					ch <- indexed[T]{index: i, err: &JoinError{Index: i, Cause: r}}
				}
			}()
			ch <- indexed[T]{index: i, value: task(ctx, i)}
		}(i)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	collected := make([]indexed[T], 0, n)
	for item := range ch {
		if item.err != nil {
			errs = append(errs, item.err)
			continue
		}
		collected = append(collected, item)
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	values = make([]T, len(collected))
	for i, item := range collected {
		values[i] = item.value
	}
	return values, errs
}
