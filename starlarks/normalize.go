package starlarks

// Normalize round-trips a Go value through its Starlark representation,
// so values that render the same in Starlark also compare equal in Go
// (int vs int64, array vs slice, tuple vs list on the way back).
func Normalize(v any) (any, error) {
	value, err := ToValue(v)
	if err != nil {
		return nil, err
	}
	return FromValue(value)
}
