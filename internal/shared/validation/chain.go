package validation

import "context"

// Step checks one rule against the request. A nil error continues the chain; any error stops it.
type Step[R any] func(ctx context.Context, req R) error

// Chain is an ordered list of steps evaluated first-failure-wins.
type Chain[R any] []Step[R]

// Run evaluates the steps in order and returns the first error. Later steps never run.
func (c Chain[R]) Run(ctx context.Context, req R) error {
	for _, step := range c {
		if step == nil {
			continue
		}
		if err := step(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// Then returns a new chain with steps appended; the receiver is left untouched.
func (c Chain[R]) Then(steps ...Step[R]) Chain[R] {
	out := make(Chain[R], 0, len(c)+len(steps))
	out = append(out, c...)
	return append(out, steps...)
}
