// Package history persists scan summaries across runs as an append-only
// JSON file.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/repotriage/repotriage/internal/domain"
)

const historyFile = ".repotriage/history/scans.json"

// FileHistory implements domain.ScanHistory using JSON file storage
// relative to a working directory.
type FileHistory struct {
	dir string
}

func New(dir string) *FileHistory {
	return &FileHistory{dir: dir}
}

func (h *FileHistory) Save(entry domain.ScanEntry) error {
	entries, err := h.Load()
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	fp := filepath.Join(h.dir, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

func (h *FileHistory) Load() ([]domain.ScanEntry, error) {
	fp := filepath.Join(h.dir, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.ScanEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
