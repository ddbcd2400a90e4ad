package caches

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HishamYahya/gollm/modes"
	"github.com/reusee/dscope"
)

func testStore(t *testing.T) *Store {
	var store *Store
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() Dir {
			return Dir(t.TempDir())
		},
	).Call(func(
		s *Store,
	) {
		store = s
	})
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := testStore(t)

	if _, ok := store.Lookup("deadbeef"); ok {
		t.Fatal("expecting miss")
	}

	err := store.Store(Entry{
		Fingerprint: "deadbeef",
		Source:      "def swap(a, b):\n    return (b, a)\n",
		Model:       "test",
	})
	if err != nil {
		t.Fatal(err)
	}

	entry, ok := store.Lookup("deadbeef")
	if !ok {
		t.Fatal("expecting hit")
	}
	if !strings.Contains(entry.Source, "def swap") {
		t.Fatalf("got %q", entry.Source)
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}

	// last writer wins
	err = store.Store(Entry{
		Fingerprint: "deadbeef",
		Source:      "def swap(a, b):\n    return (b, a)  # regenerated\n",
	})
	if err != nil {
		t.Fatal(err)
	}
	entry, ok = store.Lookup("deadbeef")
	if !ok {
		t.Fatal("expecting hit")
	}
	if !strings.Contains(entry.Source, "regenerated") {
		t.Fatalf("got %q", entry.Source)
	}
}

func TestStoreCorruptEntryIsMiss(t *testing.T) {
	store := testStore(t)

	err := os.WriteFile(
		filepath.Join(store.Dir(), "cafebabe.json"),
		[]byte("{truncated"),
		0644,
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Lookup("cafebabe"); ok {
		t.Fatal("corrupt entry must be a miss")
	}

	// mismatched fingerprint inside the entry is also corrupt
	err = os.WriteFile(
		filepath.Join(store.Dir(), "cafebabe.json"),
		[]byte(`{"fingerprint":"other","source":"def f(): pass"}`),
		0644,
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Lookup("cafebabe"); ok {
		t.Fatal("mismatched entry must be a miss")
	}
}

func TestStoreInvalidate(t *testing.T) {
	store := testStore(t)

	if err := store.Invalidate("missing"); err != nil {
		t.Fatal(err)
	}

	err := store.Store(Entry{
		Fingerprint: "feedface",
		Source:      "def f():\n    return 1\n",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Invalidate("feedface"); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Lookup("feedface"); ok {
		t.Fatal("expecting miss after invalidate")
	}
}

func TestStoreBadFingerprint(t *testing.T) {
	store := testStore(t)
	if err := store.Store(Entry{Source: "x"}); err == nil {
		t.Fatal("expecting error")
	}
	if err := store.Store(Entry{Fingerprint: "../escape", Source: "x"}); err == nil {
		t.Fatal("expecting error")
	}
}

func TestStoreNoPartialReads(t *testing.T) {
	store := testStore(t)

	// temp files from in-flight writes must not be visible as entries
	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %v", entries)
	}

	err = store.Store(Entry{
		Fingerprint: "0123",
		Source:      "def f():\n    return 1\n",
	})
	if err != nil {
		t.Fatal(err)
	}
	entries, err = os.ReadDir(store.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %v", entries)
	}
}
