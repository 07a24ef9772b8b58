package collection_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"webify/internal/collection"
	"webify/internal/services"
)

func TestLoadMediaManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media")
	if err := os.WriteFile(path, []byte(`{"0": "eat.jpg", "1": "drink.png"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	manifest, err := collection.LoadMediaManifest(path)
	if err != nil {
		t.Fatalf("LoadMediaManifest: %v", err)
	}
	want := collection.MediaManifest{"0": "eat.jpg", "1": "drink.png"}
	if !reflect.DeepEqual(manifest, want) {
		t.Fatalf("unexpected manifest %v", manifest)
	}
}

func TestLoadMediaManifestMissingFileIsEmpty(t *testing.T) {
	manifest, err := collection.LoadMediaManifest(filepath.Join(t.TempDir(), "media"))
	if err != nil {
		t.Fatalf("LoadMediaManifest: %v", err)
	}
	if len(manifest) != 0 {
		t.Fatalf("expected empty manifest, got %v", manifest)
	}
}

func TestLoadMediaManifestCorrupt(t *testing.T) {
	for name, raw := range map[string]string{"garbage": "{", "array": `["a"]`, "numbers": `{"0": 5}`} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "media")
			if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := collection.LoadMediaManifest(path); !errors.Is(err, services.ErrCorruptMetadata) {
				t.Fatalf("expected ErrCorruptMetadata, got %v", err)
			}
		})
	}
}

func TestLoadMediaManifestNullIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "media")
	if err := os.WriteFile(path, []byte("null"), 0o644); err != nil {
		t.Fatal(err)
	}
	manifest, err := collection.LoadMediaManifest(path)
	if err != nil {
		t.Fatalf("LoadMediaManifest: %v", err)
	}
	if manifest == nil || len(manifest) != 0 {
		t.Fatalf("expected empty non-nil manifest, got %#v", manifest)
	}
}

func TestManifestKeysNumericOrder(t *testing.T) {
	manifest := collection.MediaManifest{"10": "j.jpg", "2": "b.jpg", "0": "a.jpg", "x": "x.jpg", "a": "y.jpg"}
	want := []string{"0", "2", "10", "a", "x"}
	if got := manifest.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
}

func TestDecksListOrdered(t *testing.T) {
	decks := collection.Decks{"1700000000001": "Spanish", "1": "Default", "20": "French"}
	got := decks.List()
	want := []collection.Deck{{ID: "1", Name: "Default"}, {ID: "20", Name: "French"}, {ID: "1700000000001", Name: "Spanish"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
}
