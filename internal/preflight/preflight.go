package preflight

import (
	"fmt"
	"strings"

	"webify/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks for a conversion into outputRoot. archiveSize is
// the size of the input archive; extraction needs at least that much room.
func RunAll(outputRoot string, archiveSize int64) []Result {
	results := []Result{CheckDirectoryAccess("Output root", outputRoot)}
	if archiveSize > 0 {
		results = append(results, CheckFreeSpace("Output root free space", outputRoot, archiveSize))
	}
	return results
}

// Err converts failed results into a single io error, or nil when every check passed.
func Err(results []Result) error {
	var failed []string
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", result.Name, result.Detail))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return services.Wrap(services.ErrIO, "preflight", "check output root", strings.Join(failed, "; "), nil)
}
