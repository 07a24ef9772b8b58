package transform

import (
	"fmt"

	"webify/internal/collection"
	"webify/internal/services"
)

const stageName = "transforming"

// Card is one converted flashcard.
type Card struct {
	ID       int64
	DeckID   int64
	DeckName string
	Front    string
	Back     string
}

// Index maps deck display names to card ids in processing order.
type Index map[string][]int64

// Result is the in-memory outcome of a transform pass.
type Result struct {
	Cards []Card
	Index Index
}

// Transformer converts collection rows one at a time.
type Transformer struct {
	decks    collection.Decks
	replacer *Replacer
	seen     map[int64]struct{}
	result   Result
}

// New constructs a Transformer for the given decks and media rewrites.
func New(decks collection.Decks, replacer *Replacer) *Transformer {
	if replacer == nil {
		replacer = &Replacer{}
	}
	return &Transformer{
		decks:    decks,
		replacer: replacer,
		seen:     make(map[int64]struct{}),
		result:   Result{Index: Index{}},
	}
}

// Add rewrites, splits and files one row. Rows must arrive in due order.
func (t *Transformer) Add(row collection.Row) error {
	if _, dup := t.seen[row.CardID]; dup {
		return services.Wrap(services.ErrAlreadyExists, stageName, "register card", fmt.Sprintf("card %d appears more than once", row.CardID), nil)
	}

	text := t.replacer.Apply(row.Fields)
	front, back, err := SplitFaces(text)
	if err != nil {
		return fmt.Errorf("card %d: %w", row.CardID, err)
	}

	deckName, ok := t.decks.Name(row.DeckID)
	if !ok {
		return services.Wrap(services.ErrUnknownDeck, stageName, "resolve deck", fmt.Sprintf("card %d references deck %d", row.CardID, row.DeckID), nil)
	}

	t.seen[row.CardID] = struct{}{}
	t.result.Cards = append(t.result.Cards, Card{
		ID:       row.CardID,
		DeckID:   row.DeckID,
		DeckName: deckName,
		Front:    front,
		Back:     back,
	})
	t.result.Index[deckName] = append(t.result.Index[deckName], row.CardID)
	return nil
}

// Result returns everything added so far.
func (t *Transformer) Result() *Result {
	return &t.result
}

// DeckCounts returns the number of cards filed under each deck name.
func (r *Result) DeckCounts() map[string]int {
	counts := make(map[string]int, len(r.Index))
	for name, ids := range r.Index {
		counts[name] = len(ids)
	}
	return counts
}
