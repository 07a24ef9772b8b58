package collection

import (
	"sort"
	"strconv"
)

// Deck is a named grouping of cards. ID is the decimal deck id as stored in
// the decks JSON object.
type Deck struct {
	ID   string
	Name string
}

// Decks maps deck id to display name.
type Decks map[string]string

// Name resolves a numeric deck id.
func (d Decks) Name(id int64) (string, bool) {
	name, ok := d[strconv.FormatInt(id, 10)]
	return name, ok
}

// List returns the decks ordered by id.
func (d Decks) List() []Deck {
	out := make([]Deck, 0, len(d))
	for id, name := range d {
		out = append(out, Deck{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return lessKey(out[i].ID, out[j].ID) })
	return out
}

// Row is one record of the notes/cards join.
type Row struct {
	CardID int64
	DeckID int64
	Fields string
}

// MediaManifest maps the internal archive filename of a media payload to the
// original filename referenced in card markup.
type MediaManifest map[string]string

// Keys returns the manifest keys in stable order: numerically when both keys
// are integers, lexicographically otherwise.
func (m MediaManifest) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })
	return keys
}

func lessKey(a, b string) bool {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		return ai < bi
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}
