// Package archive unpacks exported deck archives into a working directory.
//
// An export is a zip file whose root holds the SQLite collection
// (collection.anki21) and a JSON media manifest named "media"; media payloads
// sit next to them under short numeric names. Extract refuses entries that
// would land outside the destination and reports exports produced without the
// collection file as incompatible so callers can abort before writing output.
package archive
