package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/HishamYahya/gollm/cmds"
	"github.com/HishamYahya/gollm/debugs"
	"github.com/HishamYahya/gollm/funcspecs"
	"github.com/HishamYahya/gollm/logs"
	"github.com/HishamYahya/gollm/modes"
	"github.com/HishamYahya/gollm/synths"
	"github.com/reusee/dscope"
	"golang.org/x/term"
)

var (
	examples = cmds.Collect[string]("-example")
	noCache  = cmds.Switch("-no-cache")
	callArgs = cmds.Var[string]("-call")
	tapInto  = cmds.Switch("-tap")
)

func main() {
	rest := cmds.Execute(os.Args[1:])
	ctx := context.Background()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		logger logs.Logger,
		def synths.Def,
		tap debugs.Tap,
	) {

		description := strings.TrimSpace(strings.Join(rest, " "))
		stdin := getStdinContent()
		if len(stdin) > 0 {
			description = strings.TrimSpace(description + "\n" + string(stdin))
		}
		if description == "" {
			os.Stderr.WriteString("usage: gollm [flags] <task description>\n")
			cmds.PrintUsage()
			os.Exit(1)
		}

		spec := funcspecs.Spec{
			Description: description,
		}
		for _, raw := range *examples {
			example, err := parseExample(raw)
			ce(err)
			spec.Examples = append(spec.Examples, example)
		}

		fn, err := def(ctx, spec, synths.Options{
			DisableCache: *noCache,
		})
		ce(err)

		logger.InfoContext(ctx, "function bound",
			"name", fn.Name(),
			"model", fn.Model,
			"fingerprint", fn.Fingerprint,
		)
		fmt.Print(fn.String())

		if *callArgs != "" {
			var args []any
			ce(json.Unmarshal([]byte(*callArgs), &args))
			result, err := fn.Call(ctx, args...)
			ce(err)
			output, err := json.Marshal(result)
			ce(err)
			fmt.Println(string(output))
		}

		if *tapInto {
			ce(tap(map[string]any{
				fn.Name(): fn.Value(),
			}))
		}

	})

}

// parseExample reads one `-example` argument of the form
// `[inputs...] => output`, both sides JSON.
func parseExample(raw string) (funcspecs.Example, error) {
	var example funcspecs.Example
	inputsStr, outputStr, ok := strings.Cut(raw, "=>")
	if !ok {
		return example, fmt.Errorf(`example must look like "[1, 2] => [2, 1]"`)
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(inputsStr)), &example.Inputs); err != nil {
		return example, fmt.Errorf("bad example inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(outputStr)), &example.Output); err != nil {
		return example, fmt.Errorf("bad example output: %w", err)
	}
	return example, nil
}

func getStdinContent() (ret []byte) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	ret, err := io.ReadAll(os.Stdin)
	ce(err)
	return
}
