// Package github implements domain.RepositoryFetcher against the GitHub
// REST API. All network access of a scan happens here; the engine only
// ever sees the resulting snapshot.
package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"go.uber.org/zap"

	"github.com/repotriage/repotriage/internal/domain"
	"github.com/repotriage/repotriage/internal/domain/sampler"
)

// Client fetches repository snapshots and metadata.
type Client struct {
	gh     *gh.Client
	logger *zap.Logger
}

// New creates a GitHub client. An empty token means unauthenticated
// access, which works for public repositories at reduced rate limits.
func New(token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := gh.NewClient(nil)
	if token != "" {
		c = c.WithAuthToken(token)
	}
	return &Client{gh: c, logger: logger}
}

// Snapshot fetches the repository tree, the content of eligible source
// files up to the configured bounds, and the most recent open issues.
// Per-file fetch failures leave the snapshot partially populated rather
// than failing the whole fetch.
func (c *Client) Snapshot(ctx context.Context, ref domain.RepoRef, opts domain.FetchOptions) (*domain.Snapshot, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, fmt.Errorf("fetching repository %s: %w", ref, err)
	}
	branch := repo.GetDefaultBranch()

	tree, _, err := c.gh.Git.GetTree(ctx, ref.Owner, ref.Name, branch, true)
	if err != nil {
		return nil, fmt.Errorf("fetching tree for %s@%s: %w", ref, branch, err)
	}

	snap := &domain.Snapshot{
		ID:            ref.String(),
		DefaultBranch: branch,
		Info:          infoFromRepo(repo),
	}

	maxFiles := opts.MaxFiles
	if maxFiles <= 0 {
		maxFiles = domain.DefaultMaxFiles
	}
	maxBytes := opts.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = domain.DefaultMaxFileBytes
	}

	for _, entry := range tree.Entries {
		path := entry.GetPath()
		if !strings.Contains(path, "/") {
			snap.TopLevel = append(snap.TopLevel, path)
		}
		if entry.GetType() != "blob" || len(snap.Files) >= maxFiles {
			continue
		}
		if !sampler.Eligible(path) || int64(entry.GetSize()) > maxBytes {
			continue
		}

		content, err := c.fileContent(ctx, ref, path, branch)
		if err != nil {
			c.logger.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
			continue
		}
		snap.Files = append(snap.Files, domain.FileEntry{
			Path:    path,
			Size:    int64(entry.GetSize()),
			Content: content,
		})
	}

	issues, err := c.openIssues(ctx, ref, opts.MaxIssues)
	if err != nil {
		// Issues are supplementary; a partially populated snapshot stands.
		c.logger.Warn("fetching open issues failed", zap.String("repo", ref.String()), zap.Error(err))
	}
	snap.Issues = issues

	return snap, nil
}

// Info returns repository metadata.
func (c *Client) Info(ctx context.Context, ref domain.RepoRef) (*domain.RepoInfo, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, fmt.Errorf("fetching repository %s: %w", ref, err)
	}
	return infoFromRepo(repo), nil
}

// ListByOwner lists a user's or organization's repositories.
func (c *Client) ListByOwner(ctx context.Context, owner string, limit int) ([]domain.RepoInfo, error) {
	if limit <= 0 {
		limit = 30
	}
	repos, _, err := c.gh.Repositories.ListByUser(ctx, owner, &gh.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: limit},
	})
	if err != nil {
		return nil, fmt.Errorf("listing repositories for %s: %w", owner, err)
	}

	out := make([]domain.RepoInfo, 0, len(repos))
	for _, r := range repos {
		out = append(out, *infoFromRepo(r))
	}
	return out, nil
}

func (c *Client) fileContent(ctx context.Context, ref domain.RepoRef, path, branch string) (string, error) {
	file, _, _, err := c.gh.Repositories.GetContents(ctx, ref.Owner, ref.Name, path,
		&gh.RepositoryContentGetOptions{Ref: branch})
	if err != nil {
		return "", err
	}
	if file == nil {
		return "", fmt.Errorf("%s is not a file", path)
	}
	return file.GetContent()
}

func (c *Client) openIssues(ctx context.Context, ref domain.RepoRef, limit int) ([]domain.RepoIssue, error) {
	if limit <= 0 {
		limit = domain.DefaultMaxIssues
	}
	issues, _, err := c.gh.Issues.ListByRepo(ctx, ref.Owner, ref.Name, &gh.IssueListByRepoOptions{
		State:       "open",
		ListOptions: gh.ListOptions{PerPage: limit},
	})
	if err != nil {
		return nil, err
	}

	var out []domain.RepoIssue
	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}
		labels := make([]string, 0, len(issue.Labels))
		for _, l := range issue.Labels {
			labels = append(labels, l.GetName())
		}
		out = append(out, domain.RepoIssue{
			Number:    issue.GetNumber(),
			Title:     issue.GetTitle(),
			Body:      issue.GetBody(),
			Labels:    labels,
			Author:    issue.GetUser().GetLogin(),
			CreatedAt: issue.GetCreatedAt().Time,
		})
	}
	return out, nil
}

func infoFromRepo(r *gh.Repository) *domain.RepoInfo {
	return &domain.RepoInfo{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		Language:      r.GetLanguage(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		DefaultBranch: r.GetDefaultBranch(),
		License:       r.GetLicense().GetName(),
		Topics:        r.Topics,
		URL:           r.GetHTMLURL(),
		Private:       r.GetPrivate(),
		CreatedAt:     r.GetCreatedAt().Time,
		UpdatedAt:     r.GetUpdatedAt().Time,
	}
}
