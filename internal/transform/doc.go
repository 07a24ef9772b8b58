// Package transform turns collection rows into web-ready cards.
//
// Each row's combined field text has its image references rewritten to point
// at the served media folder, is split into a front and a back face at the
// first field separator, and is filed under its deck's display name. The
// resulting Index preserves the order rows were fed in, which callers keep
// aligned with the collection's due ranking.
package transform
