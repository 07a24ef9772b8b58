package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInvocation  = errors.New("invalid invocation")
	ErrInputNotFound      = errors.New("input not found")
	ErrExtraction         = errors.New("archive extraction failed")
	ErrIncompatibleExport = errors.New("incompatible export")
	ErrCorruptMetadata    = errors.New("corrupt metadata")
	ErrUnknownDeck        = errors.New("unknown deck")
	ErrMalformedCard      = errors.New("malformed card")
	ErrAlreadyExists      = errors.New("already exists")
	ErrIO                 = errors.New("io error")
	ErrConfiguration      = errors.New("configuration error")
)

// Category names returned by Classify.
const (
	CategoryInvalidInvocation  = "invalid_invocation"
	CategoryInputNotFound      = "input_not_found"
	CategoryExtraction         = "extraction_error"
	CategoryIncompatibleExport = "incompatible_export"
	CategoryCorruptMetadata    = "corrupt_metadata"
	CategoryUnknownDeck        = "unknown_deck"
	CategoryMalformedCard      = "malformed_card"
	CategoryAlreadyExists      = "already_exists"
	CategoryConfiguration      = "configuration"
	CategoryIO                 = "io_error"
)

var markerCategories = []struct {
	marker   error
	category string
}{
	{ErrInvalidInvocation, CategoryInvalidInvocation},
	{ErrInputNotFound, CategoryInputNotFound},
	{ErrIncompatibleExport, CategoryIncompatibleExport},
	{ErrExtraction, CategoryExtraction},
	{ErrCorruptMetadata, CategoryCorruptMetadata},
	{ErrUnknownDeck, CategoryUnknownDeck},
	{ErrMalformedCard, CategoryMalformedCard},
	{ErrAlreadyExists, CategoryAlreadyExists},
	{ErrConfiguration, CategoryConfiguration},
	{ErrIO, CategoryIO},
}

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify returns the category of the first marker found in err's chain.
// Untagged errors are reported as io errors.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range markerCategories {
		if errors.Is(err, entry.marker) {
			return entry.category
		}
	}
	return CategoryIO
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "conversion failure"
	}
	return strings.Join(parts, ": ")
}
