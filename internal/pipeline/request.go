package pipeline

import (
	"fmt"
	"strings"
	"time"

	"webify/internal/services"
)

// Request describes one conversion.
type Request struct {
	ArchivePath  string
	TargetID     string
	OutputRoot   string
	MediaPrepend string
}

// Validate rejects requests that cannot name a safe target directory.
func (r Request) Validate() error {
	if strings.TrimSpace(r.ArchivePath) == "" {
		return services.Wrap(services.ErrInvalidInvocation, "", "validate request", "input archive path is required", nil)
	}
	target := r.TargetID
	switch {
	case strings.TrimSpace(target) == "":
		return services.Wrap(services.ErrInvalidInvocation, "", "validate request", "target id is required", nil)
	case target == "." || target == "..":
		return services.Wrap(services.ErrInvalidInvocation, "", "validate request", fmt.Sprintf("target id %q is reserved", target), nil)
	case strings.ContainsAny(target, `/\`):
		return services.Wrap(services.ErrInvalidInvocation, "", "validate request", fmt.Sprintf("target id %q must not contain a path separator", target), nil)
	}
	return nil
}

// UnresolvedImage is an img source left untouched by the media rewrite.
type UnresolvedImage struct {
	CardID int64  `json:"card_id"`
	Face   string `json:"face"`
	Source string `json:"src"`
}

// Result summarises a successful conversion.
type Result struct {
	RunID      string            `json:"run_id"`
	TargetDir  string            `json:"target_dir"`
	Cards      int               `json:"cards"`
	Decks      map[string]int    `json:"decks"`
	MediaFiles int               `json:"media_files"`
	Unresolved []UnresolvedImage `json:"unresolved_images,omitempty"`
	Duration   time.Duration     `json:"duration_ns"`
}
