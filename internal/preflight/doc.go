// Package preflight provides readiness checks for the filesystem paths a
// conversion writes into.
//
// The pipeline calls RunAll once the output root exists and before the
// archive is extracted. A failed check aborts the run with an io error so no
// partial target directory is produced for a doomed conversion.
package preflight
