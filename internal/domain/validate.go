package domain

import "fmt"

// ValidateSnapshot rejects malformed snapshots before any detection runs.
// The error names the offending field so callers can report it directly.
func ValidateSnapshot(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot is nil")
	}
	if snap.ID == "" {
		return fmt.Errorf("snapshot is missing required field id")
	}
	for i, f := range snap.Files {
		if f.Path == "" {
			return fmt.Errorf("snapshot file %d is missing required field path", i)
		}
	}
	return nil
}
