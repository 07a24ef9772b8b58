package archive_test

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"webify/internal/archive"
	"webify/internal/services"
	"webify/internal/testsupport"
)

func TestExtractUnpacksExport(t *testing.T) {
	base := t.TempDir()
	archivePath := testsupport.WriteArchive(t, filepath.Join(base, "deck.apkg"), testsupport.SampleExport())
	dest := filepath.Join(base, "out", "temp")

	extraction, err := archive.Extract(context.Background(), archivePath, dest)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if extraction.DatabasePath != filepath.Join(dest, archive.DatabaseName) {
		t.Fatalf("unexpected database path %q", extraction.DatabasePath)
	}
	if extraction.ManifestPath != filepath.Join(dest, archive.ManifestName) {
		t.Fatalf("unexpected manifest path %q", extraction.ManifestPath)
	}
	if extraction.Entries != 3 {
		t.Fatalf("expected 3 entries, got %d", extraction.Entries)
	}
	if got := testsupport.ReadFile(t, filepath.Join(dest, "0")); got != "\xff\xd8\xff fake jpeg" {
		t.Fatalf("unexpected media payload %q", got)
	}
}

func TestExtractMissingInput(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "temp")
	_, err := archive.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.apkg"), dest)
	if !errors.Is(err, services.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
	testsupport.AssertNotExists(t, dest)
}

func TestCheckInputRejectsDirectory(t *testing.T) {
	if err := archive.CheckInput(t.TempDir()); !errors.Is(err, services.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound for directory, got %v", err)
	}
}

func TestExtractMalformedArchive(t *testing.T) {
	base := t.TempDir()
	archivePath := filepath.Join(base, "broken.apkg")
	if err := os.WriteFile(archivePath, []byte("definitely not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := archive.Extract(context.Background(), archivePath, filepath.Join(base, "temp"))
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractMissingDatabaseIsIncompatible(t *testing.T) {
	base := t.TempDir()
	export := testsupport.SampleExport()
	export.OmitDatabase = true
	export.ExtraEntries = map[string][]byte{"collection.anki2": []byte("legacy")}
	archivePath := testsupport.WriteArchive(t, filepath.Join(base, "deck.apkg"), export)

	_, err := archive.Extract(context.Background(), archivePath, filepath.Join(base, "temp"))
	if !errors.Is(err, services.ErrIncompatibleExport) {
		t.Fatalf("expected ErrIncompatibleExport, got %v", err)
	}
	if !strings.Contains(err.Error(), "compatibility mode") {
		t.Fatalf("expected user-facing hint, got %q", err)
	}
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	for _, name := range []string{"../evil", "nested/../../evil", "/abs/evil"} {
		t.Run(name, func(t *testing.T) {
			base := t.TempDir()
			archivePath := filepath.Join(base, "evil.apkg")
			writeRawZip(t, archivePath, map[string]string{name: "payload"})

			dest := filepath.Join(base, "out", "temp")
			_, err := archive.Extract(context.Background(), archivePath, dest)
			if !errors.Is(err, services.ErrExtraction) {
				t.Fatalf("expected ErrExtraction, got %v", err)
			}
			testsupport.AssertNotExists(t, filepath.Join(base, "out", "evil"))
		})
	}
}

func TestExtractCreatesNestedDirectories(t *testing.T) {
	base := t.TempDir()
	archivePath := filepath.Join(base, "nested.apkg")
	writeRawZip(t, archivePath, map[string]string{
		"extra/":             "",
		"extra/notes.txt":    "hi",
		archive.DatabaseName: "not really sqlite",
	})

	extraction, err := archive.Extract(context.Background(), archivePath, filepath.Join(base, "temp"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := testsupport.ReadFile(t, filepath.Join(extraction.Dir, "extra", "notes.txt")); got != "hi" {
		t.Fatalf("unexpected nested content %q", got)
	}
}

func TestExtractHonoursCancellation(t *testing.T) {
	base := t.TempDir()
	archivePath := testsupport.WriteArchive(t, filepath.Join(base, "deck.apkg"), testsupport.SampleExport())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := archive.Extract(ctx, archivePath, filepath.Join(base, "temp")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func writeRawZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	zw := zip.NewWriter(out)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
}
