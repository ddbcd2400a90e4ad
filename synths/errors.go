package synths

import (
	"fmt"
	"strings"
)

// ExhaustedError means every attempt produced a candidate that failed
// extraction, binding or validation. Diagnostics holds one line per
// failed attempt, in order.
type ExhaustedError struct {
	Fingerprint string
	Attempts    int
	Diagnostics []string
}

func (e *ExhaustedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "synthesis failed after %d attempt(s)", e.Attempts)
	if len(e.Diagnostics) > 0 {
		b.WriteString(": ")
		b.WriteString(e.Diagnostics[len(e.Diagnostics)-1])
	}
	return b.String()
}
