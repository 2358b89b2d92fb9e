package audio

import "context"

type settled[T any] struct {
	v   T
	err error
}

// awaitSettled waits for the single result on ch or for ctx. When ctx wins,
// a successful result that lands later goes to late instead of being lost.
func awaitSettled[T any](ctx context.Context, ch <-chan settled[T], late func(T)) (T, error) {
	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		go func() {
			if r := <-ch; r.err == nil && late != nil {
				late(r.v)
			}
		}()
		var zero T
		return zero, ctx.Err()
	}
}
