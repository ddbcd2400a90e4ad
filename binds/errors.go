package binds

import "fmt"

// BindingError means a source text could not be resolved to a single
// callable. It is terminal: validated artifacts should never trigger it,
// but cached entries written by another template version may.
type BindingError struct {
	Fingerprint string
	Reason      string
}

func (b BindingError) Error() string {
	return fmt.Sprintf("cannot bind %s: %s", b.Fingerprint, b.Reason)
}
