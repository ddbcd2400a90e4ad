package starlarks

import (
	"go.starlark.net/syntax"
)

// FileOptions for generated code. Models tend to emit Python, so the
// non-core statements are all enabled.
var FileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}
