package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"webify/internal/services"
)

const (
	// DatabaseName is the collection file every compatible export carries.
	DatabaseName = "collection.anki21"
	// ManifestName is the JSON media manifest at the archive root.
	ManifestName = "media"

	stageName = "extracting"
)

// IncompatibleExportMessage is shown to users whose archive lacks DatabaseName.
const IncompatibleExportMessage = DatabaseName + " does not exist, decks should be exported in compatibility mode"

// Extraction describes an unpacked archive.
type Extraction struct {
	Dir          string
	DatabasePath string
	ManifestPath string
	Entries      int
}

// CheckInput verifies that the archive path names an existing regular file.
func CheckInput(archivePath string) error {
	info, err := os.Stat(archivePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrInputNotFound, stageName, "stat archive", archivePath, nil)
		}
		return services.Wrap(services.ErrIO, stageName, "stat archive", archivePath, err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrInputNotFound, stageName, "stat archive", archivePath+" is a directory", nil)
	}
	return nil
}

// Extract unpacks archivePath into destDir and validates that the collection
// database is present.
func Extract(ctx context.Context, archivePath, destDir string) (*Extraction, error) {
	if err := CheckInput(archivePath); err != nil {
		return nil, err
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, services.Wrap(services.ErrExtraction, stageName, "open archive", archivePath, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrIO, stageName, "create destination", destDir, err)
	}

	entries := 0
	for _, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := extractEntry(file, destDir); err != nil {
			return nil, err
		}
		entries++
	}

	extraction := &Extraction{
		Dir:          destDir,
		DatabasePath: filepath.Join(destDir, DatabaseName),
		ManifestPath: filepath.Join(destDir, ManifestName),
		Entries:      entries,
	}

	info, err := os.Stat(extraction.DatabasePath)
	if err != nil || info.IsDir() {
		return nil, services.Wrap(services.ErrIncompatibleExport, stageName, "locate collection", IncompatibleExportMessage, nil)
	}
	return extraction, nil
}

func extractEntry(file *zip.File, destDir string) error {
	name := strings.ReplaceAll(file.Name, "\\", "/")
	isDir := strings.HasSuffix(name, "/") || file.FileInfo().IsDir()
	name = strings.TrimSuffix(name, "/")
	if name == "" {
		return nil
	}
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return services.Wrap(services.ErrExtraction, stageName, "validate entry", fmt.Sprintf("entry %q escapes the archive root", file.Name), nil)
	}
	target := filepath.Join(destDir, local)

	if isDir {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return services.Wrap(services.ErrIO, stageName, "create directory", target, err)
		}
		return nil
	}
	if !file.Mode().IsRegular() {
		return services.Wrap(services.ErrExtraction, stageName, "validate entry", fmt.Sprintf("entry %q is not a regular file", file.Name), nil)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return services.Wrap(services.ErrIO, stageName, "create directory", filepath.Dir(target), err)
	}

	src, err := file.Open()
	if err != nil {
		return services.Wrap(services.ErrExtraction, stageName, "open entry", file.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return services.Wrap(services.ErrIO, stageName, "create file", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		// Checksum and decompression failures surface from the zip reader here.
		return services.Wrap(services.ErrExtraction, stageName, "read entry", file.Name, err)
	}
	if err := dst.Close(); err != nil {
		return services.Wrap(services.ErrIO, stageName, "close file", target, err)
	}
	return nil
}
