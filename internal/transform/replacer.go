package transform

import (
	"fmt"
	"strings"

	"webify/internal/collection"
)

// Replacement is one literal substitution applied to card text.
type Replacement struct {
	Pattern     string
	Replacement string
}

// Replacer applies an ordered list of media reference rewrites.
type Replacer struct {
	pairs []Replacement
}

// NewReplacer builds the image rewrite pairs for manifest. Each
// <img src="{original}"> becomes <img src="{prepend}{targetID}/media/{key}">.
// Pairs follow manifest.Keys() ordering.
func NewReplacer(manifest collection.MediaManifest, prepend, targetID string) *Replacer {
	keys := manifest.Keys()
	pairs := make([]Replacement, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, Replacement{
			Pattern:     imageTag(manifest[key]),
			Replacement: imageTag(MediaURL(prepend, targetID, key)),
		})
	}
	return &Replacer{pairs: pairs}
}

// MediaURL returns the served location of a media file.
func MediaURL(prepend, targetID, key string) string {
	return prepend + targetID + "/media/" + key
}

// Pairs returns a copy of the substitution list in application order.
func (r *Replacer) Pairs() []Replacement {
	out := make([]Replacement, len(r.pairs))
	copy(out, r.pairs)
	return out
}

// Apply runs every substitution over text in order. Later pairs see the output
// of earlier ones.
func (r *Replacer) Apply(text string) string {
	for _, pair := range r.pairs {
		text = strings.ReplaceAll(text, pair.Pattern, pair.Replacement)
	}
	return text
}

func imageTag(src string) string {
	return fmt.Sprintf(`<img src="%s">`, src)
}
