package domain

import "context"

// RepositoryFetcher retrieves snapshots and metadata from a hosting service.
// Implementations own all network concerns; the engine only sees the result.
type RepositoryFetcher interface {
	Snapshot(ctx context.Context, ref RepoRef, opts FetchOptions) (*Snapshot, error)
	Info(ctx context.Context, ref RepoRef) (*RepoInfo, error)
	ListByOwner(ctx context.Context, owner string, limit int) ([]RepoInfo, error)
}

// FetchOptions bounds what a fetcher retrieves for a snapshot.
type FetchOptions struct {
	MaxFiles     int
	MaxFileBytes int64
	MaxIssues    int
}

// CardWriter creates work items on an external task board.
type CardWriter interface {
	CreateCard(ctx context.Context, card Card) (string, error)
	SetupBoard(ctx context.Context) error
}

// Reviewer produces findings for a single file via an external
// language-model provider. Failures are per-file and never fatal.
type Reviewer interface {
	Review(ctx context.Context, file FileEntry) ([]Finding, error)
}

// SnapshotCache is an explicit cache for fetched snapshots, owned by the
// collaborator layer and passed in per call.
type SnapshotCache interface {
	Load(ref RepoRef) (*Snapshot, error)
	Save(snap *Snapshot) error
	Invalidate(ref RepoRef) error
}

// ScanHistory persists scan summaries across runs.
type ScanHistory interface {
	Save(entry ScanEntry) error
	Load() ([]ScanEntry, error)
}

// ConfigLoader loads scan configuration for a working directory.
type ConfigLoader interface {
	Load(dir string) (Config, error)
}
