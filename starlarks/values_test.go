package starlarks

import (
	"reflect"
	"testing"

	"go.starlark.net/starlark"
)

func TestToValue(t *testing.T) {
	type pair struct {
		A string
		b int
	}

	cases := []struct {
		name     string
		input    any
		expected starlark.Value
	}{
		{"nil", nil, starlark.None},
		{"bool", true, starlark.True},
		{"string", "hello", starlark.String("hello")},
		{"bytes", []byte("abc"), starlark.Bytes("abc")},
		{"int", 42, starlark.MakeInt(42)},
		{"int64", int64(42), starlark.MakeInt64(42)},
		{"uint", uint(42), starlark.MakeUint(42)},
		{"float", 3.25, starlark.Float(3.25)},
		{"slice", []int{1, 2}, starlark.NewList([]starlark.Value{
			starlark.MakeInt(1),
			starlark.MakeInt(2),
		})},
		{"any slice", []any{1, "a"}, starlark.NewList([]starlark.Value{
			starlark.MakeInt(1),
			starlark.String("a"),
		})},
		{"map", map[string]int{"a": 1}, func() starlark.Value {
			d := starlark.NewDict(1)
			d.SetKey(starlark.String("a"), starlark.MakeInt(1))
			return d
		}()},
		{"struct", pair{A: "x", b: 9}, func() starlark.Value {
			d := starlark.NewDict(1)
			d.SetKey(starlark.String("A"), starlark.String("x"))
			return d
		}()},
		{"pointer", &pair{A: "x"}, func() starlark.Value {
			d := starlark.NewDict(1)
			d.SetKey(starlark.String("A"), starlark.String("x"))
			return d
		}()},
		{"nil pointer", (*pair)(nil), starlark.None},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ToValue(tc.input)
			if err != nil {
				t.Fatal(err)
			}
			equal, err := starlark.Equal(actual, tc.expected)
			if err != nil {
				t.Fatal(err)
			}
			if !equal {
				t.Fatalf("got %v, expecting %v", actual, tc.expected)
			}
		})
	}

	if _, err := ToValue(make(chan int)); err == nil {
		t.Fatal("expecting error")
	}
}

func TestFromValue(t *testing.T) {
	cases := []struct {
		name     string
		input    starlark.Value
		expected any
	}{
		{"none", starlark.None, nil},
		{"bool", starlark.True, true},
		{"int", starlark.MakeInt(42), int64(42)},
		{"float", starlark.Float(1.5), 1.5},
		{"string", starlark.String("x"), "x"},
		{"tuple", starlark.Tuple{starlark.MakeInt(2), starlark.MakeInt(1)}, []any{int64(2), int64(1)}},
		{"list", starlark.NewList([]starlark.Value{starlark.String("a")}), []any{"a"}},
		{"dict", func() starlark.Value {
			d := starlark.NewDict(1)
			d.SetKey(starlark.String("k"), starlark.MakeInt(1))
			return d
		}(), map[string]any{"k": int64(1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := FromValue(tc.input)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(actual, tc.expected) {
				t.Fatalf("got %#v, expecting %#v", actual, tc.expected)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	input := map[string]any{
		"list": []any{int64(1), "two", 3.0},
		"flag": true,
	}
	value, err := ToValue(input)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromValue(value)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, input) {
		t.Fatalf("got %#v", back)
	}
}
