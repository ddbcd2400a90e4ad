package debugs

import (
	"testing"

	"go.starlark.net/starlark"
)

func TestGlobalsFrom(t *testing.T) {
	globals, err := globalsFrom(map[string]any{
		"x":    42,
		"name": "foo",
	})
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := globals["x"].(starlark.Int); !ok || v.String() != "42" {
		t.Fatalf("got %v", globals["x"])
	}
	if v, ok := globals["name"].(starlark.String); !ok || string(v) != "foo" {
		t.Fatalf("got %v", globals["name"])
	}
}

func TestGlobalsFromBadValue(t *testing.T) {
	if _, err := globalsFrom(map[string]any{
		"ch": make(chan int),
	}); err == nil {
		t.Fatal("expecting error")
	}
}
