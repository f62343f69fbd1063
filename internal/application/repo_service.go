package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/repotriage/repotriage/internal/domain"
)

// RepoService fronts the repository-fetch collaborator with an explicit
// snapshot cache. The cache is owned here, not by ambient state: it is
// constructed by the caller and passed in.
type RepoService struct {
	fetcher domain.RepositoryFetcher
	cache   domain.SnapshotCache // optional
	logger  *zap.Logger
}

func NewRepoService(fetcher domain.RepositoryFetcher, cache domain.SnapshotCache, logger *zap.Logger) *RepoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RepoService{fetcher: fetcher, cache: cache, logger: logger}
}

// Snapshot returns a repository snapshot, serving from cache unless
// refresh is set. Cache failures are logged and fall through to a fetch.
func (r *RepoService) Snapshot(ctx context.Context, ref domain.RepoRef, opts domain.FetchOptions, refresh bool) (*domain.Snapshot, error) {
	if r.cache != nil && !refresh {
		snap, err := r.cache.Load(ref)
		if err != nil {
			r.logger.Warn("snapshot cache read failed", zap.String("repo", ref.String()), zap.Error(err))
		} else if snap != nil {
			r.logger.Debug("snapshot served from cache", zap.String("repo", ref.String()))
			return snap, nil
		}
	}

	snap, err := r.fetcher.Snapshot(ctx, ref, opts)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot for %s: %w", ref, err)
	}

	if r.cache != nil {
		if err := r.cache.Save(snap); err != nil {
			r.logger.Warn("snapshot cache write failed", zap.String("repo", ref.String()), zap.Error(err))
		}
	}
	return snap, nil
}

// Info returns repository metadata.
func (r *RepoService) Info(ctx context.Context, ref domain.RepoRef) (*domain.RepoInfo, error) {
	info, err := r.fetcher.Info(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetching info for %s: %w", ref, err)
	}
	return info, nil
}

// ListByOwner lists a user's or organization's repositories.
func (r *RepoService) ListByOwner(ctx context.Context, owner string, limit int) ([]domain.RepoInfo, error) {
	repos, err := r.fetcher.ListByOwner(ctx, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("listing repositories for %s: %w", owner, err)
	}
	return repos, nil
}
