package checks

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/HishamYahya/gollm/binds"
	"github.com/HishamYahya/gollm/funcspecs"
	"github.com/HishamYahya/gollm/logs"
	"github.com/HishamYahya/gollm/starlarks"
)

// Result records the outcome of running a candidate against one example.
// Exactly one of Err and Actual is meaningful when Passed is false.
type Result struct {
	Index    int
	Inputs   []any
	Expected any
	Actual   any
	Err      error
	Passed   bool
}

// Check runs a bound candidate against every example and reports per
// example results. Results are comparable structurally: values round-trip
// through their Starlark form first, so a returned tuple matches a Go
// slice. No examples means nothing to falsify, so the candidate passes.
type Check func(ctx context.Context, fn *binds.BoundFunction, examples []funcspecs.Example) (results []Result, passed bool)

func (Module) Check(
	logger logs.Logger,
) Check {
	return func(ctx context.Context, fn *binds.BoundFunction, examples []funcspecs.Example) ([]Result, bool) {
		passed := true
		results := make([]Result, 0, len(examples))
		for i, example := range examples {
			result := Result{
				Index:    i,
				Inputs:   example.Inputs,
				Expected: example.Output,
			}

			value, err := fn.CallValue(ctx, example.Inputs...)
			if err != nil {
				result.Err = err
				passed = false
				results = append(results, result)
				continue
			}

			actual, err := starlarks.FromValue(value)
			if err != nil {
				result.Err = err
				passed = false
				results = append(results, result)
				continue
			}
			result.Actual = actual

			expected, err := starlarks.Normalize(example.Output)
			if err != nil {
				result.Err = err
				passed = false
				results = append(results, result)
				continue
			}

			result.Passed = reflect.DeepEqual(actual, expected)
			if !result.Passed {
				passed = false
				logger.DebugContext(ctx, "example failed",
					slog.String("function", fn.Name()),
					slog.Int("example", i),
				)
			}
			results = append(results, result)
		}
		return results, passed
	}
}
