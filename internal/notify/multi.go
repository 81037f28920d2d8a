package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Multi fans an alert out to every child channel concurrently, so one slow
// or blocked channel cannot stall the others. Each child gets its own
// deadline; failures are joined and reported, never retried here.
type Multi struct {
	children []Dispatcher
	timeout  time.Duration
}

func NewMulti(timeout time.Duration, children ...Dispatcher) *Multi {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Multi{children: children, timeout: timeout}
}

func (m *Multi) Name() string { return "multi" }

func (m *Multi) Dispatch(ctx context.Context, a Alert) error {
	if len(m.children) == 0 {
		return nil
	}

	errs := make([]error, len(m.children))
	var wg sync.WaitGroup
	for i, d := range m.children {
		wg.Add(1)
		go func(i int, d Dispatcher) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, m.timeout)
			defer cancel()
			if err := d.Dispatch(cctx, a); err != nil {
				errs[i] = fmt.Errorf("%s: %w", d.Name(), err)
			}
		}(i, d)
	}
	wg.Wait()

	return errors.Join(errs...)
}
