package staging

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"webify/internal/logging"
)

// TempDirName is the extraction working directory created inside the target directory.
const TempDirName = "temp"

// Prepare creates targetDir (and its parents) plus a fresh temp working
// directory inside it. A temp directory left behind by an earlier run is
// removed first so extraction always starts from an empty tree.
func Prepare(targetDir string, logger *slog.Logger) (string, error) {
	targetDir = strings.TrimSpace(targetDir)
	if targetDir == "" {
		return "", errors.New("staging: target directory is empty")
	}

	tempDir := filepath.Join(targetDir, TempDirName)
	info, err := os.Stat(tempDir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return "", fmt.Errorf("staging: %s exists and is not a directory", tempDir)
		}
		size, _ := dirSize(tempDir)
		if err := os.RemoveAll(tempDir); err != nil {
			return "", fmt.Errorf("remove stale temp directory: %w", err)
		}
		if logger != nil {
			logger.Info("removed stale temp directory",
				logging.String("path", tempDir),
				logging.Int64("reclaimed_bytes", size),
				logging.String(logging.FieldEventType, "staging_cleanup"),
			)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("stat temp directory: %w", err)
	}

	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp directory: %w", err)
	}
	return tempDir, nil
}

// Cleanup removes the temp working directory after a successful run.
func Cleanup(tempDir string, logger *slog.Logger) error {
	tempDir = strings.TrimSpace(tempDir)
	if tempDir == "" {
		return nil
	}
	size, _ := dirSize(tempDir)
	if err := os.RemoveAll(tempDir); err != nil {
		if logger != nil {
			logging.WarnWithContext(logger, "failed to remove temp directory", "staging_cleanup_failed",
				logging.String("path", tempDir),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check output directory permissions"),
				logging.String(logging.FieldImpact, "extracted archive left on disk"),
			)
		}
		return fmt.Errorf("remove temp directory: %w", err)
	}
	if logger != nil {
		logger.Debug("removed temp directory",
			logging.String("path", tempDir),
			logging.Int64("reclaimed_bytes", size),
			logging.String(logging.FieldEventType, "staging_cleanup"),
		)
	}
	return nil
}

// dirSize calculates the total size of a directory recursively.
func dirSize(path string) (int64, error) {
	var size int64
	err := filepath.WalkDir(path, func(_ string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // best effort
		}
		if !entry.IsDir() {
			if info, infoErr := entry.Info(); infoErr == nil {
				size += info.Size()
			}
		}
		return nil
	})
	return size, err
}
