package dispatch

import (
	"context"
	"fmt"

	"github.com/arthur-debert/wonders/pkg/args"
	"github.com/arthur-debert/wonders/pkg/errors"
)

// Result is the outcome of an asynchronous action.
type Result struct {
	Value any
	Err   error
}

// Completion is a value that may not be available yet.
type Completion interface {
	// Await blocks until the value is available or ctx is done.
	Await(ctx context.Context) (any, error)
}

// Action is a command handler. Invoke receives the positionals that follow
// the command name and every named option, unchanged.
type Action interface {
	Invoke(ctx context.Context, rest []string, opts args.Options) Completion
}

// ActionFunc is a synchronous handler.
type ActionFunc func(ctx context.Context, rest []string, opts args.Options) (any, error)

// Invoke runs f on the calling goroutine.
func (f ActionFunc) Invoke(ctx context.Context, rest []string, opts args.Options) Completion {
	v, err := f(ctx, rest, opts)
	if err != nil {
		return Failed(err)
	}
	return Resolved(v)
}

// AsyncActionFunc is a handler that delivers its result on a channel. The
// channel must receive one Result; closing it without one is a failure.
type AsyncActionFunc func(ctx context.Context, rest []string, opts args.Options) <-chan Result

// Invoke starts f and returns a Completion for its channel.
func (f AsyncActionFunc) Invoke(ctx context.Context, rest []string, opts args.Options) Completion {
	return channel(f(ctx, rest, opts))
}

// Go turns a synchronous function into an asynchronous action that runs on
// its own goroutine. A panic in fn becomes the action's error.
func Go(fn ActionFunc) AsyncActionFunc {
	return func(ctx context.Context, rest []string, opts args.Options) <-chan Result {
		ch := make(chan Result, 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					ch <- Result{Err: fmt.Errorf("action panicked: %v", r)}
				}
			}()
			v, err := fn(ctx, rest, opts)
			ch <- Result{Value: v, Err: err}
		}()
		return ch
	}
}

// Resolved returns a Completion that is already available.
func Resolved(v any) Completion { return resolved{value: v} }

// Failed returns a Completion that already failed with err.
func Failed(err error) Completion { return failed{err: err} }

type resolved struct{ value any }

func (r resolved) Await(context.Context) (any, error) { return r.value, nil }

type failed struct{ err error }

func (f failed) Await(context.Context) (any, error) { return nil, f.err }

type channel <-chan Result

func (c channel) Await(ctx context.Context) (any, error) {
	if c == nil {
		return nil, errors.New(errors.ErrHandler, "action returned a nil channel")
	}
	select {
	case res, ok := <-c:
		if !ok {
			return nil, errors.New(errors.ErrHandler, "action channel closed without a result")
		}
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// actionOf accepts the handler shapes a command's onAction attribute may
// hold. A nil value, typed or not, means the command has no handler.
func actionOf(v any) (Action, bool) {
	switch fn := v.(type) {
	case ActionFunc:
		if fn == nil {
			return nil, true
		}
		return fn, true
	case AsyncActionFunc:
		if fn == nil {
			return nil, true
		}
		return fn, true
	case Action:
		return fn, true
	case func(context.Context, []string, args.Options) (any, error):
		if fn == nil {
			return nil, true
		}
		return ActionFunc(fn), true
	case func(context.Context, []string, args.Options) <-chan Result:
		if fn == nil {
			return nil, true
		}
		return AsyncActionFunc(fn), true
	case func([]string, args.Options) (any, error):
		if fn == nil {
			return nil, true
		}
		return ActionFunc(func(_ context.Context, rest []string, opts args.Options) (any, error) {
			return fn(rest, opts)
		}), true
	case func([]string, args.Options) any:
		if fn == nil {
			return nil, true
		}
		return ActionFunc(func(_ context.Context, rest []string, opts args.Options) (any, error) {
			return fn(rest, opts), nil
		}), true
	default:
		return nil, false
	}
}
