package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"webify/internal/collection"
	"webify/internal/fileutil"
	"webify/internal/logging"
	"webify/internal/services"
	"webify/internal/transform"
)

const stageName = "writing"

// Directory and file names inside a target directory.
const (
	FrontDir  = "front"
	BackDir   = "back"
	MediaDir  = "media"
	IndexName = "index.json"
)

// Writer writes converted cards, media and the deck index into a target directory.
type Writer struct {
	targetDir string
	logger    *slog.Logger
}

// New constructs a Writer rooted at targetDir.
func New(targetDir string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Writer{
		targetDir: targetDir,
		logger:    logging.NewComponentLogger(logger, "output"),
	}
}

// TargetDir reports the directory the writer populates.
func (w *Writer) TargetDir() string {
	return w.targetDir
}

// WriteCards writes the front and back face of every card, one file per face
// named by the decimal card id.
func (w *Writer) WriteCards(cards []transform.Card) error {
	frontDir := filepath.Join(w.targetDir, FrontDir)
	backDir := filepath.Join(w.targetDir, BackDir)
	for _, dir := range []string{frontDir, backDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrIO, stageName, "create directory", dir, err)
		}
	}

	for _, card := range cards {
		name := strconv.FormatInt(card.ID, 10)
		if err := w.writeFile(filepath.Join(frontDir, name), []byte(card.Front)); err != nil {
			return err
		}
		if err := w.writeFile(filepath.Join(backDir, name), []byte(card.Back)); err != nil {
			return err
		}
	}
	w.logger.Debug("card faces written", logging.Int("cards", len(cards)))
	return nil
}

// MoveMedia relocates every manifest entry from tempDir into media/<key>.
// It returns the number of files moved.
func (w *Writer) MoveMedia(tempDir string, manifest collection.MediaManifest) (int, error) {
	mediaDir := filepath.Join(w.targetDir, MediaDir)
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		return 0, services.Wrap(services.ErrIO, stageName, "create directory", mediaDir, err)
	}

	moved := 0
	for _, key := range manifest.Keys() {
		src := filepath.Join(tempDir, key)
		dst := filepath.Join(mediaDir, key)
		if _, err := os.Lstat(dst); err == nil {
			return moved, services.Wrap(services.ErrAlreadyExists, stageName, "move media", dst, fs.ErrExist)
		}
		if err := fileutil.MoveFile(src, dst); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return moved, services.Wrap(services.ErrIO, stageName, "move media",
					fmt.Sprintf("media file %s (%s) missing from archive", key, manifest[key]), err)
			}
			return moved, services.Wrap(services.ErrIO, stageName, "move media", key, err)
		}
		moved++
	}
	w.logger.Debug("media moved", logging.Int("media_files", moved))
	return moved, nil
}

// WriteIndex writes index.json mapping deck names to ordered card ids.
func (w *Writer) WriteIndex(index transform.Index) error {
	if index == nil {
		index = transform.Index{}
	}
	data, err := json.Marshal(index)
	if err != nil {
		return services.Wrap(services.ErrIO, stageName, "encode index", "", err)
	}
	return w.writeFile(filepath.Join(w.targetDir, IndexName), data)
}

func (w *Writer) writeFile(path string, data []byte) error {
	if err := fileutil.WriteExclusive(path, data); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return services.Wrap(services.ErrAlreadyExists, stageName, "write file", path, err)
		}
		return services.Wrap(services.ErrIO, stageName, "write file", path, err)
	}
	return nil
}
