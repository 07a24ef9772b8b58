package collection

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"

	_ "modernc.org/sqlite"

	"webify/internal/services"
)

const stageName = "reading metadata"

const (
	decksQuery = `SELECT decks FROM col`
	cardsQuery = `SELECT cards.did, notes.flds, notes.id
		FROM notes, cards
		WHERE notes.id = cards.id
		ORDER BY cards.due ASC`
)

// Reader provides read-only access to an extracted collection database.
type Reader struct {
	db   *sql.DB
	path string
}

// Open connects to the collection at path without permitting writes.
func Open(ctx context.Context, path string) (*Reader, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, stageName, "resolve database path", path, err)
	}
	dsn := (&url.URL{
		Scheme:   "file",
		Path:     absolute,
		RawQuery: "mode=ro&_pragma=query_only(1)",
	}).String()

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, services.Wrap(services.ErrCorruptMetadata, stageName, "open database", absolute, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, services.Wrap(services.ErrCorruptMetadata, stageName, "open database", absolute, err)
	}
	return &Reader{db: db, path: absolute}, nil
}

// Close closes the underlying database connection.
func (r *Reader) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Path returns the absolute database path.
func (r *Reader) Path() string {
	return r.path
}

// Decks loads the deck-id to deck-name mapping from the single col row.
func (r *Reader) Decks(ctx context.Context) (Decks, error) {
	var raw string
	if err := r.db.QueryRowContext(ctx, decksQuery).Scan(&raw); err != nil {
		return nil, services.Wrap(services.ErrCorruptMetadata, stageName, "query decks", "", err)
	}

	var decoded map[string]struct {
		Name *string `json:"name"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, services.Wrap(services.ErrCorruptMetadata, stageName, "decode decks", "", err)
	}

	decks := make(Decks, len(decoded))
	for id, deck := range decoded {
		if deck.Name == nil {
			return nil, services.Wrap(services.ErrCorruptMetadata, stageName, "decode decks", fmt.Sprintf("deck %s has no name", id), nil)
		}
		decks[id] = *deck.Name
	}
	return decks, nil
}

// Cards streams every row of the notes/cards join ordered by due rank.
// fn is called once per row in order; a non-nil return stops iteration and is
// returned unchanged.
func (r *Reader) Cards(ctx context.Context, fn func(Row) error) error {
	rows, err := r.db.QueryContext(ctx, cardsQuery)
	if err != nil {
		return services.Wrap(services.ErrCorruptMetadata, stageName, "query cards", "", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.DeckID, &row.Fields, &row.CardID); err != nil {
			return services.Wrap(services.ErrCorruptMetadata, stageName, "scan card", "", err)
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return services.Wrap(services.ErrCorruptMetadata, stageName, "iterate cards", "", err)
	}
	return nil
}
