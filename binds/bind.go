package binds

import (
	"sort"
	"sync"
	"time"

	"github.com/HishamYahya/gollm/configs"
	"github.com/HishamYahya/gollm/starlarks"
	"go.starlark.net/lib/json"
	"go.starlark.net/lib/math"
	"go.starlark.net/starlark"
	"golang.org/x/sync/singleflight"
)

// ExecTimeout bounds the wall time of a single invocation of a bound
// function.
type ExecTimeout time.Duration

func (Module) ExecTimeout(
	loader configs.Loader,
) ExecTimeout {
	if seconds := configs.First[int](loader, "exec_timeout_seconds"); seconds > 0 {
		return ExecTimeout(time.Duration(seconds) * time.Second)
	}
	return ExecTimeout(5 * time.Second)
}

// MaxSteps caps the Starlark steps of a single invocation, so a tight
// loop terminates even when the wall clock check is starved.
type MaxSteps uint64

func (Module) MaxSteps() MaxSteps {
	return 1 << 28
}

func predeclared() starlark.StringDict {
	return starlark.StringDict{
		"math": math.Module,
		"json": json.Module,
	}
}

// Compile executes a source text on a fresh thread and binds the first
// function it defines. Each call compiles anew; use Bind for the
// memoized path.
type Compile func(fingerprint string, source string) (*BoundFunction, error)

func (Module) Compile(
	execTimeout ExecTimeout,
	maxSteps MaxSteps,
) Compile {
	return func(fingerprint string, source string) (*BoundFunction, error) {
		thread := &starlark.Thread{
			Name: "bind:" + fingerprint,
		}
		thread.SetMaxExecutionSteps(uint64(maxSteps))
		globals, err := starlark.ExecFileOptions(
			starlarks.FileOptions,
			thread,
			fingerprint+".star",
			source,
			predeclared(),
		)
		if err != nil {
			return nil, BindingError{
				Fingerprint: fingerprint,
				Reason:      err.Error(),
			}
		}

		var functions []*starlark.Function
		for _, value := range globals {
			if fn, ok := value.(*starlark.Function); ok {
				functions = append(functions, fn)
			}
		}
		if len(functions) == 0 {
			return nil, BindingError{
				Fingerprint: fingerprint,
				Reason:      "no function definition",
			}
		}
		// the first definition in the source is the one the prompt asked for
		sort.Slice(functions, func(i, j int) bool {
			return functions[i].Position().Line < functions[j].Position().Line
		})

		return &BoundFunction{
			fn:          functions[0],
			Fingerprint: fingerprint,
			Source:      source,
			timeout:     time.Duration(execTimeout),
			maxSteps:    uint64(maxSteps),
		}, nil
	}
}

// Bind is the memoized Compile: the same fingerprint and source compile
// at most once per process, concurrent binders share the in-flight
// compilation. A call with different source for a known fingerprint
// recompiles and replaces the binding, so a cache-bypassing regeneration
// does not serve the stale artifact.
type Bind func(fingerprint string, source string) (*BoundFunction, error)

func (Module) Bind(
	compile Compile,
) Bind {
	var bound sync.Map
	var group singleflight.Group
	load := func(fingerprint string, source string) (*BoundFunction, bool) {
		v, ok := bound.Load(fingerprint)
		if !ok {
			return nil, false
		}
		fn := v.(*BoundFunction)
		if fn.Source != source {
			return nil, false
		}
		return fn, true
	}
	return func(fingerprint string, source string) (*BoundFunction, error) {
		if fn, ok := load(fingerprint, source); ok {
			return fn, nil
		}
		fn, err, _ := group.Do(fingerprint, func() (any, error) {
			if fn, ok := load(fingerprint, source); ok {
				return fn, nil
			}
			fn, err := compile(fingerprint, source)
			if err != nil {
				return nil, err
			}
			bound.Store(fingerprint, fn)
			return fn, nil
		})
		if err != nil {
			return nil, err
		}
		return fn.(*BoundFunction), nil
	}
}
