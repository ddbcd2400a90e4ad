package checks

import (
	"fmt"
	"strings"

	"github.com/HishamYahya/gollm/prompts"
)

// Feedback renders failed results into repair instructions for the next
// generation attempt. Returns "" when everything passed.
func Feedback(results []Result) string {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	if len(failed) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("The code above fails for the following unit test(s):\n")
	for _, result := range failed {
		if result.Err != nil {
			fmt.Fprintf(&b, "%s -> expecting %s, raised an error: %s\n",
				prompts.FormatInputs(result.Inputs),
				prompts.FormatValue(result.Expected),
				result.Err.Error(),
			)
		} else {
			fmt.Fprintf(&b, "%s -> expecting %s, got %s instead\n",
				prompts.FormatInputs(result.Inputs),
				prompts.FormatValue(result.Expected),
				prompts.FormatValue(result.Actual),
			)
		}
	}
	b.WriteString("Please fix the code.")
	return b.String()
}
