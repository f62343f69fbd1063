package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repotriage/repotriage/internal/application"
	"github.com/repotriage/repotriage/internal/domain"
)

type fakeFetcher struct {
	snap    *domain.Snapshot
	err     error
	fetches int
}

func (f *fakeFetcher) Snapshot(_ context.Context, ref domain.RepoRef, _ domain.FetchOptions) (*domain.Snapshot, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	if f.snap != nil {
		return f.snap, nil
	}
	return &domain.Snapshot{ID: ref.String()}, nil
}

func (f *fakeFetcher) Info(_ context.Context, ref domain.RepoRef) (*domain.RepoInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.RepoInfo{FullName: ref.String()}, nil
}

func (f *fakeFetcher) ListByOwner(_ context.Context, owner string, limit int) ([]domain.RepoInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.RepoInfo{{FullName: owner + "/one"}}, nil
}

type memoryCache struct {
	snaps   map[string]*domain.Snapshot
	loadErr error
	saves   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{snaps: make(map[string]*domain.Snapshot)}
}

func (m *memoryCache) Load(ref domain.RepoRef) (*domain.Snapshot, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.snaps[ref.String()], nil
}

func (m *memoryCache) Save(snap *domain.Snapshot) error {
	m.saves++
	m.snaps[snap.ID] = snap
	return nil
}

func (m *memoryCache) Invalidate(ref domain.RepoRef) error {
	delete(m.snaps, ref.String())
	return nil
}

func TestSnapshot_CacheMissThenHit(t *testing.T) {
	fetcher := &fakeFetcher{}
	cache := newMemoryCache()
	svc := application.NewRepoService(fetcher, cache, nil)
	ref := domain.RepoRef{Owner: "octocat", Name: "app"}

	snap, err := svc.Snapshot(context.Background(), ref, domain.FetchOptions{}, false)
	require.NoError(t, err)
	assert.Equal(t, "octocat/app", snap.ID)
	assert.Equal(t, 1, fetcher.fetches)
	assert.Equal(t, 1, cache.saves)

	_, err = svc.Snapshot(context.Background(), ref, domain.FetchOptions{}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.fetches, "second call should be served from cache")
}

func TestSnapshot_RefreshBypassesCache(t *testing.T) {
	fetcher := &fakeFetcher{}
	cache := newMemoryCache()
	svc := application.NewRepoService(fetcher, cache, nil)
	ref := domain.RepoRef{Owner: "octocat", Name: "app"}

	_, err := svc.Snapshot(context.Background(), ref, domain.FetchOptions{}, false)
	require.NoError(t, err)
	_, err = svc.Snapshot(context.Background(), ref, domain.FetchOptions{}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.fetches)
}

func TestSnapshot_CacheReadFailureFallsThrough(t *testing.T) {
	fetcher := &fakeFetcher{}
	cache := newMemoryCache()
	cache.loadErr = errors.New("corrupt cache file")
	svc := application.NewRepoService(fetcher, cache, nil)

	snap, err := svc.Snapshot(context.Background(), domain.RepoRef{Owner: "octocat", Name: "app"}, domain.FetchOptions{}, false)
	require.NoError(t, err)
	assert.NotNil(t, snap)
	assert.Equal(t, 1, fetcher.fetches)
}

func TestSnapshot_NoCache(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := application.NewRepoService(fetcher, nil, nil)

	snap, err := svc.Snapshot(context.Background(), domain.RepoRef{Owner: "octocat", Name: "app"}, domain.FetchOptions{}, false)
	require.NoError(t, err)
	assert.NotNil(t, snap)
}

func TestSnapshot_FetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("rate limited")}
	svc := application.NewRepoService(fetcher, nil, nil)

	_, err := svc.Snapshot(context.Background(), domain.RepoRef{Owner: "octocat", Name: "app"}, domain.FetchOptions{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "octocat/app")
}

func TestInfoAndListByOwner(t *testing.T) {
	svc := application.NewRepoService(&fakeFetcher{}, nil, nil)

	info, err := svc.Info(context.Background(), domain.RepoRef{Owner: "octocat", Name: "app"})
	require.NoError(t, err)
	assert.Equal(t, "octocat/app", info.FullName)

	repos, err := svc.ListByOwner(context.Background(), "octocat", 10)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "octocat/one", repos[0].FullName)
}
