package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/pantry/internal/model"
)

// JSON-backed snapshot of the batch list. Single file, human-readable.
// No locking; fine for a local single-user tool.

const formatVersion = 1

type snapshot struct {
	Version int           `json:"version"`
	Batches []model.Batch `json:"batches"`
}

// Load reads the batches at path. A missing file is an empty pantry.
func Load(path string) ([]model.Batch, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Batch{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if snap.Version > formatVersion {
		return nil, fmt.Errorf("unsupported format version %d", snap.Version)
	}
	if snap.Batches == nil {
		snap.Batches = []model.Batch{}
	}
	return snap.Batches, nil
}

// Save writes the batches to path, creating its directory.
// The file is replaced through a rename so a crash never leaves half a snapshot.
func Save(path string, batches []model.Batch) error {
	if batches == nil {
		batches = []model.Batch{}
	}
	b, err := json.MarshalIndent(snapshot{Version: formatVersion, Batches: batches}, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
