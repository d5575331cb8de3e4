package storage_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/yevhenkap/tixjar/internal/storage"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	in := map[string]int{"a": 1, "b": 2}
	if err := store.Save("orders", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := map[string]int{}
	if err := store.Load("orders", &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 || out["a"] != 1 || out["b"] != 2 {
		t.Errorf("expected round-tripped map, got %v", out)
	}
}

func TestLoadMissingKey(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	var out map[string]int
	err = store.Load("absent", &out)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestSaveReplacesSnapshot(t *testing.T) {
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Save("jars", []int{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save("jars", []int{4}); err != nil {
		t.Fatal(err)
	}

	var out []int
	if err := store.Load("jars", &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != 4 {
		t.Errorf("expected replaced snapshot [4], got %v", out)
	}
}
