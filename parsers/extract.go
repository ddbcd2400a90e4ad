package parsers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/HishamYahya/gollm/starlarks"
	"go.starlark.net/syntax"
)

// ExtractionError means the completion held no usable code. It feeds the
// retry loop as feedback rather than failing the request.
type ExtractionError struct {
	Reason string
}

func (e ExtractionError) Error() string {
	return fmt.Sprintf("no usable code in completion: %s", e.Reason)
}

var fencePattern = regexp.MustCompile("(?s)```[a-zA-Z0-9_+-]*[ \t]*\n(.*?)```")

// Extract isolates the candidate code from a raw completion. Models wrap
// code in fenced blocks and surround it with prose; the first fenced block
// wins, and an unfenced completion is taken whole. The result is checked
// for syntactic validity and must define at least one function.
func Extract(raw string) (string, error) {
	code := raw
	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		code = m[1]
	}
	code = strings.Trim(code, "\n") + "\n"

	file, err := starlarks.FileOptions.Parse("generated.star", code, 0)
	if err != nil {
		return "", ExtractionError{
			Reason: err.Error(),
		}
	}

	if !hasDef(file.Stmts) {
		return "", ExtractionError{
			Reason: "no function definition found",
		}
	}

	return code, nil
}

func hasDef(stmts []syntax.Stmt) bool {
	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *syntax.DefStmt:
			return true
		case *syntax.IfStmt:
			if hasDef(stmt.True) || hasDef(stmt.False) {
				return true
			}
		case *syntax.ForStmt:
			if hasDef(stmt.Body) {
				return true
			}
		case *syntax.WhileStmt:
			if hasDef(stmt.Body) {
				return true
			}
		}
	}
	return false
}
