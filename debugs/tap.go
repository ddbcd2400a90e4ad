package debugs

import (
	"fmt"
	"sort"

	"github.com/HishamYahya/gollm/starlarks"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
)

// Tap drops into an interactive Starlark session with the given values
// predeclared, for poking at a synthesized function from the terminal.
type Tap func(values map[string]any) error

func (Module) Tap() Tap {
	return func(values map[string]any) error {
		globals, err := globalsFrom(values)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(globals))
		for name := range globals {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Printf("defined: %v\n", names)

		thread := &starlark.Thread{
			Name: "tap",
		}
		repl.REPLOptions(starlarks.FileOptions, thread, globals)
		return nil
	}
}

func globalsFrom(values map[string]any) (starlark.StringDict, error) {
	globals := make(starlark.StringDict, len(values))
	for name, value := range values {
		converted, err := starlarks.ToValue(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		globals[name] = converted
	}
	return globals, nil
}
