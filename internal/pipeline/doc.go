// Package pipeline drives a single archive conversion from start to finish.
//
// Run validates the request, confirms the input exists before touching the
// filesystem, checks and locks the output root, and then executes the
// extracting, reading metadata, transforming and writing stages in order.
// Each stage logs "stage started" and "stage completed" carrying the run id
// and stage name. The first failing stage aborts the run and its typed error
// is returned unchanged; whatever was already written stays on disk.
//
// Every card is transformed and validated in memory before the writing stage
// creates any output file, so unknown decks and malformed cards never leave
// half a target directory behind.
package pipeline
