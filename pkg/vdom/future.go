package vdom

import (
	"context"
	"sync"
)

// Future is a one-shot promise of a VNode subtree, used by boundary nodes.
// The producing function runs at most once, on the first call to Start or
// Wait, and the settled result is broadcast to every waiter.
type Future struct {
	fn   func(context.Context) (*VNode, error)
	once sync.Once
	done chan struct{}
	node *VNode
	err  error
}

// NewFuture creates a future backed by fn. The function is not invoked
// until Start or Wait is called.
func NewFuture(fn func(context.Context) (*VNode, error)) *Future {
	return &Future{
		fn:   fn,
		done: make(chan struct{}),
	}
}

// ResolvedFuture returns a future that is already settled with node.
func ResolvedFuture(node *VNode) *Future {
	f := &Future{done: make(chan struct{}), node: node}
	close(f.done)
	return f
}

// FailedFuture returns a future that is already settled with err.
func FailedFuture(err error) *Future {
	f := &Future{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Start begins producing the value in a background goroutine.
// Calling Start more than once is a no-op.
func (f *Future) Start() {
	f.once.Do(func() {
		if f.fn == nil {
			// Pre-settled future; nothing to run.
			return
		}
		go func() {
			defer func() {
				if r := recover(); r != nil {
					f.err = panicError(r)
				}
				close(f.done)
			}()
			f.node, f.err = f.fn(context.Background())
		}()
	})
}

// Wait blocks until the future settles or ctx is done. A ctx error means
// the caller gave up waiting; the future keeps producing and later waiters
// may still observe the settled value.
func (f *Future) Wait(ctx context.Context) (*VNode, error) {
	f.Start()
	select {
	case <-f.done:
		return f.node, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel closed when the future has settled.
func (f *Future) Done() <-chan struct{} {
	f.Start()
	return f.done
}

// Settled reports whether the future has produced its value, without
// starting production.
func (f *Future) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result returns the settled value. Only valid after Done is closed.
func (f *Future) Result() (*VNode, error) {
	return f.node, f.err
}
