package binds

import (
	"context"
	"regexp"
	"time"

	"github.com/HishamYahya/gollm/starlarks"
	"go.starlark.net/starlark"
)

// BoundFunction wraps a compiled candidate, bound to its function symbol.
// It is compiled once and invoked many times; its lifetime is independent
// of the cache store's copy of the source.
type BoundFunction struct {
	fn *starlark.Function

	Fingerprint string
	Source      string
	Model       string

	timeout  time.Duration
	maxSteps uint64
}

func (b *BoundFunction) Name() string {
	return b.fn.Name()
}

// Value exposes the raw callable for embedding in another interpreter.
// Calls through it are not bounded by the execution limits.
func (b *BoundFunction) Value() starlark.Value {
	return b.fn
}

// CallValue invokes the function and returns the raw Starlark result.
// Each invocation runs on a fresh thread bounded by a wall timeout and a
// step cap, so a hanging candidate terminates that call only.
func (b *BoundFunction) CallValue(ctx context.Context, args ...any) (starlark.Value, error) {
	tuple := make(starlark.Tuple, 0, len(args))
	for _, arg := range args {
		value, err := starlarks.ToValue(arg)
		if err != nil {
			return nil, err
		}
		tuple = append(tuple, value)
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	thread := &starlark.Thread{
		Name: "call:" + b.Name(),
	}
	thread.SetMaxExecutionSteps(b.maxSteps)
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel("execution timed out")
	})
	defer stop()

	return starlark.Call(thread, b.fn, tuple, nil)
}

// Call invokes the function with Go values and converts the result back.
// Errors raised by the generated code propagate unmodified.
func (b *BoundFunction) Call(ctx context.Context, args ...any) (any, error) {
	value, err := b.CallValue(ctx, args...)
	if err != nil {
		return nil, err
	}
	return starlarks.FromValue(value)
}

var defPattern = regexp.MustCompile(`(?m)^def .+:.*\n(?:[ \t]+.*\n?)*`)

// String returns the first function definition in the source.
func (b *BoundFunction) String() string {
	if m := defPattern.FindString(b.Source); m != "" {
		return m
	}
	return b.Source
}
