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

// fakeReviewer returns canned findings, or an error, for every file.
type fakeReviewer struct {
	findings []domain.Finding
	err      error
	calls    int
}

func (f *fakeReviewer) Review(_ context.Context, file domain.FileEntry) ([]domain.Finding, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Finding, len(f.findings))
	copy(out, f.findings)
	for i := range out {
		out[i].File = file.Path
	}
	return out, nil
}

func healthySnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		ID:       "octocat/app",
		TopLevel: []string{"README.md", "LICENSE", "go.mod", "tests", ".github"},
		Files: []domain.FileEntry{
			{Path: "src/auth.py", Content: "password = \"hunter2\"\n"},
		},
	}
}

func TestScan_RuleFindings(t *testing.T) {
	svc := application.NewScanService(domain.DefaultConfig(), nil, nil)
	report, err := svc.Scan(context.Background(), healthySnapshot())
	require.NoError(t, err)

	require.Equal(t, 1, report.Total())
	assert.Equal(t, "hardcoded-password", report.Findings[0].RuleID)
	assert.Equal(t, 1, report.FilesAnalyzed)
	assert.Equal(t, 100, report.QualityScore)
	assert.Equal(t, "octocat/app", report.Repository)
}

func TestScan_CleanRepository(t *testing.T) {
	snap := &domain.Snapshot{
		ID:       "octocat/clean",
		TopLevel: []string{"README.md", "LICENSE", "go.mod", "tests", ".github"},
	}

	svc := application.NewScanService(domain.DefaultConfig(), nil, nil)
	report, err := svc.Scan(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Total())
	assert.Empty(t, report.CountsByCategory)
	assert.Empty(t, report.CountsBySeverity)
	assert.Equal(t, 100, report.QualityScore)
	assert.Equal(t, 0, report.FilesAnalyzed)
}

func TestScan_ReviewerIsAdditive(t *testing.T) {
	reviewer := &fakeReviewer{findings: []domain.Finding{{
		RuleID:      "ai-review",
		Category:    domain.CategoryQuality,
		Severity:    domain.SeverityMedium,
		Title:       "Confusing control flow",
		Description: "The retry loop re-enters itself on failure",
		Line:        1,
	}}}

	svc := application.NewScanService(domain.DefaultConfig(), reviewer, nil)
	report, err := svc.Scan(context.Background(), healthySnapshot())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total())
	assert.Equal(t, 1, reviewer.calls)
}

func TestScan_ReviewerErrorsAreNotFatal(t *testing.T) {
	reviewer := &fakeReviewer{err: errors.New("provider unavailable")}

	svc := application.NewScanService(domain.DefaultConfig(), reviewer, nil)
	report, err := svc.Scan(context.Background(), healthySnapshot())
	require.NoError(t, err)

	// Only the rule-based finding survives.
	assert.Equal(t, 1, report.Total())
	assert.Equal(t, 1, reviewer.calls)
}

func TestScan_ReviewerBoundedByAIMaxFiles(t *testing.T) {
	snap := &domain.Snapshot{
		ID:       "octocat/many",
		TopLevel: []string{"README.md", "LICENSE", "go.mod", "tests", ".github"},
	}
	for i := 0; i < 10; i++ {
		snap.Files = append(snap.Files, domain.FileEntry{
			Path:    string(rune('a'+i)) + ".py",
			Content: "x = 1\n",
		})
	}

	cfg := domain.DefaultConfig()
	cfg.AIMaxFiles = 3
	reviewer := &fakeReviewer{}

	svc := application.NewScanService(cfg, reviewer, nil)
	_, err := svc.Scan(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, 3, reviewer.calls)
}

func TestScan_InvalidSnapshot(t *testing.T) {
	svc := application.NewScanService(domain.DefaultConfig(), nil, nil)

	_, err := svc.Scan(context.Background(), nil)
	assert.Error(t, err)

	_, err = svc.Scan(context.Background(), &domain.Snapshot{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id")
}
