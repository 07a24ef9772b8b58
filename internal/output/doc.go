// Package output materialises a converted deck on disk.
//
// A Writer owns one target directory and lays it out as front/<id>,
// back/<id>, media/<key> and index.json. Every file is created exclusively so
// a second conversion into the same target fails instead of overwriting.
package output
