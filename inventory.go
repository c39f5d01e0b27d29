package sidecar

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrMediaDir = errors.New("sidecar: unable to read media directory")

// BuildInventory lists the regular files at the top level of mediaDir,
// excluding files that already carry sidecarExt. Entries that vanish or
// cannot be inspected mid-scan are skipped. The result is a point-in-time
// snapshot of the directory.
func BuildInventory(mediaDir, sidecarExt string) ([]FileEntry, error) {
	entries, err := os.ReadDir(mediaDir)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrMediaDir, mediaDir, err)
	}

	var files []FileEntry
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		if sidecarExt != "" && ext == sidecarExt {
			continue
		}

		files = append(files, FileEntry{
			Path: filepath.Join(mediaDir, name),
			Name: name,
			Stem: strings.TrimSuffix(name, ext),
		})
	}

	return files, nil
}
