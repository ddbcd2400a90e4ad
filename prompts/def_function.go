package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HishamYahya/gollm/funcspecs"
)

// Version identifies the prompt template revision. It participates in the
// fingerprint, so bumping it invalidates every cached artifact.
const Version = "v1"

const defFunctionHeader = `Define a single function in Starlark (a dialect of Python) for completing the following task:
%s

Reply with exactly one function definition inside a fenced code block.
Do not use import statements; only Starlark builtins and the predeclared math and json modules are available.
`

const unitTestsHeader = `
The function has to pass the following unit tests:
`

// DefFunction renders the generation prompt for a spec. Feedback, when
// present, describes the immediately preceding failed attempt; earlier
// attempts are never carried over, keeping the prompt size bounded.
func DefFunction(spec funcspecs.Spec, feedback string) string {
	var b strings.Builder
	fmt.Fprintf(&b, defFunctionHeader, spec.Description)

	if len(spec.Examples) > 0 {
		b.WriteString(unitTestsHeader)
		for _, example := range spec.Examples {
			fmt.Fprintf(&b, "Input: %s\nOutput: %s\n",
				FormatInputs(example.Inputs),
				FormatValue(example.Output),
			)
		}
	}

	if feedback != "" {
		b.WriteString("\n")
		b.WriteString(feedback)
		b.WriteString("\n")
	}

	return b.String()
}

// FormatInputs renders positional arguments the way they would appear at a
// call site.
func FormatInputs(inputs []any) string {
	parts := make([]string, len(inputs))
	for i, input := range inputs {
		parts[i] = FormatValue(input)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func FormatValue(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}
