package prompts

import (
	"strings"
	"testing"

	"github.com/HishamYahya/gollm/funcspecs"
)

func TestDefFunction(t *testing.T) {
	spec := funcspecs.Spec{
		Description: "Swap two input numbers",
		Examples: []funcspecs.Example{
			funcspecs.Ex([]any{2, 1}, 1, 2),
		},
	}

	prompt := DefFunction(spec, "")
	if !strings.Contains(prompt, "Swap two input numbers") {
		t.Fatalf("got %q", prompt)
	}
	if !strings.Contains(prompt, "Input: (1, 2)") {
		t.Fatalf("got %q", prompt)
	}
	if !strings.Contains(prompt, "Output: [2,1]") {
		t.Fatalf("got %q", prompt)
	}

	// deterministic
	if prompt != DefFunction(spec, "") {
		t.Fatal("prompt must be deterministic")
	}
}

func TestDefFunctionNoExamples(t *testing.T) {
	spec := funcspecs.Spec{
		Description: "Return the answer to everything",
	}
	prompt := DefFunction(spec, "")
	if strings.Contains(prompt, "unit tests") {
		t.Fatalf("got %q", prompt)
	}
}

func TestDefFunctionFeedback(t *testing.T) {
	spec := funcspecs.Spec{
		Description: "Swap two input numbers",
	}
	feedback := "The code above fails for the following unit test(s):\n(1, 2) -> expecting [2,1], got [1,2] instead\nPlease fix the code."
	prompt := DefFunction(spec, feedback)
	if !strings.Contains(prompt, "got [1,2] instead") {
		t.Fatalf("got %q", prompt)
	}

	// feedback-free prompt must not mention failures
	if strings.Contains(DefFunction(spec, ""), "fails") {
		t.Fatal()
	}
}

func TestFormatInputs(t *testing.T) {
	if s := FormatInputs([]any{1, "a", []any{2}}); s != `(1, "a", [2])` {
		t.Fatalf("got %q", s)
	}
	if s := FormatInputs(nil); s != "()" {
		t.Fatalf("got %q", s)
	}
}
