package ssr

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// FetchFunc produces the data for a query. It runs in its own goroutine
// with a background context: losing the render's race does not cancel the
// fetch, because a streaming response can still use a late result.
type FetchFunc func(ctx context.Context) (any, error)

// Query is one registered asynchronous data dependency: a cache key that
// doubles as the client-hydration identity, the fetch, a timeout budget,
// and a resolve callback that makes the data visible to the second render
// pass.
type Query struct {
	Key string

	fetch      FetchFunc
	timeout    time.Duration
	timeoutSet bool
	resolveFn  func(any)

	once     sync.Once
	done     chan struct{}
	value    any
	err      error
	resolved atomic.Bool
}

// QueryOption configures a Query.
type QueryOption func(*Query)

// WithTimeout sets the query's own timeout budget. An explicit zero
// disables the query: it is registered and fetched, but the await race is
// lost immediately and its data is never sent to the client.
func WithTimeout(d time.Duration) QueryOption {
	return func(q *Query) {
		q.timeout = d
		q.timeoutSet = true
	}
}

// WithResolve sets the callback invoked with the fetched value when the
// query wins its race. Components use it to populate the state the second
// render pass reads.
func WithResolve(fn func(any)) QueryOption {
	return func(q *Query) {
		q.resolveFn = fn
	}
}

// NewQuery creates a query. Register it with RegisterQuery during the
// discovery pass.
func NewQuery(key string, fetch FetchFunc, opts ...QueryOption) *Query {
	q := &Query{
		Key:   key,
		fetch: fetch,
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// start launches the fetch exactly once.
func (q *Query) start() {
	q.once.Do(func() {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					q.err = fmt.Errorf("query %s: panic: %v", q.Key, r)
				}
				close(q.done)
			}()
			q.value, q.err = q.fetch(context.Background())
		}()
	})
}

// Done returns a channel closed when the fetch has settled, starting the
// fetch if needed.
func (q *Query) Done() <-chan struct{} {
	q.start()
	return q.done
}

// Settled reports whether the fetch has finished, without starting it.
func (q *Query) Settled() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

// Result returns the fetched value. Only valid once Done is closed.
func (q *Query) Result() (any, error) {
	return q.value, q.err
}

// Disabled reports whether the query was registered with an explicit
// zero timeout.
func (q *Query) Disabled() bool {
	return q.timeoutSet && q.timeout == 0
}

// EffectiveTimeout resolves the timeout budget: the query's own value,
// else the render-wide override, else DefaultQueryTimeout.
func (q *Query) EffectiveTimeout() time.Duration {
	if q.timeoutSet {
		return q.timeout
	}
	if d, ok := currentTimeoutOverride(); ok {
		return d
	}
	return DefaultQueryTimeout
}

// Await races the fetch against the timeout budget and reports whether
// the fetch won. A winning fetch marks the query resolved (exactly once)
// and fires the resolve callback. A fetch error loses the race and is
// recorded as a non-fatal render error; it never fails the render.
func (q *Query) Await(ctx context.Context) bool {
	q.start()
	if q.Disabled() {
		return false
	}

	timer, cancel := context.WithTimeout(ctx, q.EffectiveTimeout())
	defer cancel()

	select {
	case <-q.done:
		if q.err != nil {
			CollectError(fmt.Errorf("query %s: %w", q.Key, q.err))
			return false
		}
		q.markResolved()
		return true
	case <-timer.Done():
		return false
	}
}

// markResolved flips the resolved flag exactly once and runs the resolve
// callback with the fetched value.
func (q *Query) markResolved() {
	if q.resolved.CompareAndSwap(false, true) {
		if q.resolveFn != nil {
			q.resolveFn(q.value)
		}
	}
}

// Resolved reports whether the query won its race. It flips at most once
// and is never reset.
func (q *Query) Resolved() bool {
	return q.resolved.Load()
}
