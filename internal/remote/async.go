package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/fastygo/taskie/domain"
)

// Result is the outcome of an asynchronous call: Err is set on failure,
// otherwise Value holds the decoded result.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Unwrap returns the result as a value/error pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// Future resolves exactly once to a Result.
type Future[T any] struct {
	done   chan struct{}
	result Result[T]
}

// Go runs fn on its own goroutine. A panic in fn resolves the future with an
// internal error instead of crashing the caller.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.result = Result[T]{Err: domain.NewError(domain.ErrCodeInternal, fmt.Sprintf("call panicked: %v", r))}
			}
		}()
		v, err := fn(ctx)
		if err != nil {
			var zero T
			v = zero
		}
		f.result = Result[T]{Value: v, Err: err}
	}()
	return f
}

// GoErr is Go for calls that only report success or failure.
func GoErr(ctx context.Context, fn func(context.Context) error) *Future[struct{}] {
	return Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the result is ready or ctx is done. Giving up on ctx
// does not stop the call; its result is discarded.
func (f *Future[T]) Await(ctx context.Context) Result[T] {
	select {
	case <-f.done:
		return f.result
	case <-ctx.Done():
		return Result[T]{Err: domain.WrapError(domain.ErrCodeTransport, "request cancelled", ctx.Err())}
	}
}

// Loop runs posted callbacks one at a time on a single goroutine, in the
// order they were posted. It plays the role of a UI thread.
type Loop struct {
	queue   chan func()
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewLoop starts a loop whose queue holds up to size pending callbacks.
func NewLoop(size int) *Loop {
	if size <= 0 {
		size = 16
	}
	l := &Loop{
		queue:   make(chan func(), size),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.stopped)
	for {
		select {
		case fn := <-l.queue:
			fn()
		case <-l.stop:
			return
		}
	}
}

// Post queues fn. It returns false if the loop has been stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stop:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.stop:
		return false
	}
}

// Stop ends the loop. Callbacks still queued are dropped.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.stop) })
	<-l.stopped
}

// Deliver hands the future's result to cb on loop. If the loop has stopped
// by then, the result is dropped.
func Deliver[T any](loop *Loop, f *Future[T], cb func(Result[T])) {
	go func() {
		<-f.Done()
		r := f.result
		loop.Post(func() { cb(r) })
	}()
}
