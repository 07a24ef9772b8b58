package transform

import (
	"strings"

	"webify/internal/services"
)

// FieldSeparator delimits note fields in the stored field text (ASCII unit separator).
const FieldSeparator = "\x1f"

// SplitFaces cuts text at the first field separator. Everything after it,
// including any further separators, belongs to the back face.
func SplitFaces(text string) (front, back string, err error) {
	front, back, found := strings.Cut(text, FieldSeparator)
	if !found {
		return "", "", services.Wrap(services.ErrMalformedCard, stageName, "split faces", "field separator missing", nil)
	}
	return front, back, nil
}

// JoinFaces reverses SplitFaces.
func JoinFaces(front, back string) string {
	return front + FieldSeparator + back
}
