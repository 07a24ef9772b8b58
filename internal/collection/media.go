package collection

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"webify/internal/services"
)

// LoadMediaManifest decodes the JSON media manifest at path. Exports without
// media omit the file entirely; that case yields an empty manifest.
func LoadMediaManifest(path string) (MediaManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return MediaManifest{}, nil
		}
		return nil, services.Wrap(services.ErrIO, stageName, "read media manifest", path, err)
	}

	manifest := MediaManifest{}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, services.Wrap(services.ErrCorruptMetadata, stageName, "decode media manifest", path, err)
	}
	if manifest == nil {
		manifest = MediaManifest{}
	}
	return manifest, nil
}
