package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"webify/internal/config"
	"webify/internal/logging"
	"webify/internal/services"
)

func prepareOutputRoot(root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	expanded, err := config.ExpandPath(root)
	if err != nil {
		return "", services.Wrap(services.ErrIO, "", "resolve output root", root, err)
	}
	absolute, err := filepath.Abs(expanded)
	if err != nil {
		return "", services.Wrap(services.ErrIO, "", "resolve output root", root, err)
	}
	if err := os.MkdirAll(absolute, 0o755); err != nil {
		return "", services.Wrap(services.ErrIO, "", "create output root", absolute, err)
	}
	return absolute, nil
}

// lockPath returns the advisory lock guarding conversions into targetID.
func lockPath(root, targetID string) string {
	return filepath.Join(root, fmt.Sprintf(".%s.lock", targetID))
}

// lockTarget takes an exclusive lock for targetID and returns its release func.
func lockTarget(root, targetID string) (func(*slog.Logger), error) {
	path := lockPath(root, targetID)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "", "acquire target lock", path, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrAlreadyExists, "", "acquire target lock",
			fmt.Sprintf("another conversion into %q is running", targetID), nil)
	}
	return func(logger *slog.Logger) {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release target lock", logging.String("lock", path), logging.Error(err))
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Debug("failed to remove target lock file", logging.String("lock", path), logging.Error(err))
		}
	}, nil
}
