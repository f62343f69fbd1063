// Package cache is a file-based snapshot cache. It is an explicit object
// owned by the collaborator layer and passed into services per call; the
// engine itself never reads it.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/repotriage/repotriage/internal/domain"
)

// Store keeps one JSON file per repository under a root directory,
// typically .repotriage/cache in the working directory.
type Store struct {
	root string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Load reads a cached snapshot. Returns (nil, nil) when none exists.
func (s *Store) Load(ref domain.RepoRef) (*domain.Snapshot, error) {
	data, err := os.ReadFile(s.path(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save writes a snapshot to disk, creating directories as needed.
func (s *Store) Save(snap *domain.Snapshot) error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	ref, err := domain.ParseRepoRef(snap.ID)
	if err != nil {
		ref = domain.RepoRef{Owner: "local", Name: snap.ID}
	}
	return os.WriteFile(s.path(ref), data, 0644)
}

// Invalidate removes the cached snapshot for a repository.
func (s *Store) Invalidate(ref domain.RepoRef) error {
	if err := os.Remove(s.path(ref)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) path(ref domain.RepoRef) string {
	name := strings.ReplaceAll(ref.String(), "/", "-") + ".json"
	return filepath.Join(s.root, name)
}
