package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"webify/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExtraction, "extracting", "unzip", "read entry", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"extracting", "unzip", "read entry", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrUnknownDeck, "", "", "", nil)
	if got := err.Error(); got != "unknown deck: conversion failure" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"not found", services.Wrap(services.ErrInputNotFound, "extracting", "stat", "", nil), services.CategoryInputNotFound},
		{"incompatible", services.Wrap(services.ErrIncompatibleExport, "extracting", "", "", nil), services.CategoryIncompatibleExport},
		{"metadata", services.Wrap(services.ErrCorruptMetadata, "reading", "decks", "", errors.New("json")), services.CategoryCorruptMetadata},
		{"deck", services.Wrap(services.ErrUnknownDeck, "transforming", "", "", nil), services.CategoryUnknownDeck},
		{"card", services.Wrap(services.ErrMalformedCard, "transforming", "", "", nil), services.CategoryMalformedCard},
		{"exists", fmt.Errorf("outer: %w", services.Wrap(services.ErrAlreadyExists, "writing", "", "", nil)), services.CategoryAlreadyExists},
		{"plain", errors.New("disk full"), services.CategoryIO},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.Classify(tc.err); got != tc.want {
				t.Fatalf("Classify = %q, want %q", got, tc.want)
			}
		})
	}
}
