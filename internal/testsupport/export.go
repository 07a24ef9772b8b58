package testsupport

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// FieldSeparator joins note fields in fixture data.
const FieldSeparator = "\x1f"

// Card describes one row of the notes/cards join.
type Card struct {
	ID     int64
	DeckID int64
	Due    int64
	Fields string
}

// Media describes one media payload plus its manifest entry.
type Media struct {
	Key      string
	Original string
	Data     []byte
}

// Export describes the content of a fixture archive.
type Export struct {
	Decks map[string]string
	Cards []Card
	Media []Media

	// DecksJSON replaces the encoded decks column when non-empty.
	DecksJSON string
	// ManifestJSON replaces the encoded media manifest when non-empty.
	ManifestJSON string
	// OmitDatabase leaves collection.anki21 out of the archive.
	OmitDatabase bool
	// OmitManifest leaves the media manifest out of the archive.
	OmitManifest bool
	// ExtraEntries are written verbatim into the archive.
	ExtraEntries map[string][]byte
}

const collectionSchema = `
CREATE TABLE col (id INTEGER PRIMARY KEY, decks TEXT NOT NULL);
CREATE TABLE notes (id INTEGER PRIMARY KEY, flds TEXT NOT NULL);
CREATE TABLE cards (id INTEGER PRIMARY KEY, did INTEGER NOT NULL, due INTEGER NOT NULL);
`

// Fields joins front and back with the field separator.
func Fields(front, back string) string {
	return front + FieldSeparator + back
}

// WriteCollection builds a SQLite collection database at path.
func WriteCollection(t testing.TB, path string, export Export) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(collectionSchema); err != nil {
		t.Fatalf("create fixture schema: %v", err)
	}

	decksJSON := export.DecksJSON
	if decksJSON == "" {
		decks := make(map[string]map[string]any, len(export.Decks))
		for id, name := range export.Decks {
			decks[id] = map[string]any{"name": name, "desc": ""}
		}
		encoded, err := json.Marshal(decks)
		if err != nil {
			t.Fatalf("encode decks: %v", err)
		}
		decksJSON = string(encoded)
	}
	if _, err := db.Exec("INSERT INTO col (id, decks) VALUES (1, ?)", decksJSON); err != nil {
		t.Fatalf("insert col: %v", err)
	}

	for _, card := range export.Cards {
		if _, err := db.Exec("INSERT INTO notes (id, flds) VALUES (?, ?)", card.ID, card.Fields); err != nil {
			t.Fatalf("insert note %d: %v", card.ID, err)
		}
		if _, err := db.Exec("INSERT INTO cards (id, did, due) VALUES (?, ?, ?)", card.ID, card.DeckID, card.Due); err != nil {
			t.Fatalf("insert card %d: %v", card.ID, err)
		}
	}
}

// WriteArchive builds a zipped export at path and returns path.
func WriteArchive(t testing.TB, path string, export Export) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	addEntry := func(name string, data []byte) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}

	if !export.OmitDatabase {
		dbPath := filepath.Join(t.TempDir(), "collection.anki21")
		WriteCollection(t, dbPath, export)
		data, err := os.ReadFile(dbPath)
		if err != nil {
			t.Fatalf("read fixture db: %v", err)
		}
		addEntry("collection.anki21", data)
	}

	if !export.OmitManifest {
		manifest := []byte(export.ManifestJSON)
		if len(manifest) == 0 {
			entries := make(map[string]string, len(export.Media))
			for _, media := range export.Media {
				entries[media.Key] = media.Original
			}
			manifest, err = json.Marshal(entries)
			if err != nil {
				t.Fatalf("encode manifest: %v", err)
			}
		}
		addEntry("media", manifest)
	}

	for _, media := range export.Media {
		if media.Data != nil {
			addEntry(media.Key, media.Data)
		}
	}
	for name, data := range export.ExtraEntries {
		addEntry(name, data)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return path
}

// SampleExport returns a two-deck export with one image.
func SampleExport() Export {
	return Export{
		Decks: map[string]string{
			"1":             "Default",
			"1700000000001": "Spanish::Verbs",
		},
		Cards: []Card{
			{ID: 1500, DeckID: 1700000000001, Due: 3, Fields: Fields("hablar", "to speak")},
			{ID: 1100, DeckID: 1700000000001, Due: 1, Fields: Fields(`comer <img src="eat.jpg">`, "to eat")},
			{ID: 1300, DeckID: 1, Due: 2, Fields: Fields("hello", "world")},
		},
		Media: []Media{
			{Key: "0", Original: "eat.jpg", Data: []byte("\xff\xd8\xff fake jpeg")},
		},
	}
}
