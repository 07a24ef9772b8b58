// Package collection reads deck metadata and card rows from an extracted
// collection database.
//
// The Reader opens the SQLite file read-only through modernc.org/sqlite and
// exposes the two lookups a conversion needs: the deck-id to deck-name table
// stored as JSON in the col row, and the notes/cards join ordered by due rank.
// The media manifest lives next to the database as a JSON file and is decoded
// by LoadMediaManifest.
package collection
