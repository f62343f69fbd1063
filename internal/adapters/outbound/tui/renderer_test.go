package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repotriage/repotriage/internal/adapters/outbound/tui"
	"github.com/repotriage/repotriage/internal/domain"
)

func sampleRenderReport() *domain.Report {
	return &domain.Report{
		ID:         "r1",
		Repository: "octocat/app",
		Findings: []domain.Finding{
			{
				RuleID: "hardcoded-password", Category: domain.CategorySecurity,
				Severity: domain.SeverityHigh, Title: "Hardcoded password in auth.py",
				Description: "Password literal assigned in source on line 2",
				File:        "src/auth.py", Line: 2,
			},
			{
				RuleID: "missing-readme", Category: domain.CategoryDocumentation,
				Severity: domain.SeverityMedium, Title: "Missing README",
				Description: "Repository lacks a README file, which is essential for project documentation.",
			},
		},
		CountsBySeverity: map[domain.Severity]int{
			domain.SeverityHigh:   1,
			domain.SeverityMedium: 1,
		},
		QualityScore:  90,
		FilesAnalyzed: 12,
	}
}

func TestRenderReport_ContainsHeader(t *testing.T) {
	output := tui.RenderReport(sampleRenderReport())
	assert.Contains(t, output, "octocat/app")
	assert.Contains(t, output, "quality 90 / 100")
	assert.Contains(t, output, "12 files analyzed")
}

func TestRenderReport_ContainsFindings(t *testing.T) {
	output := tui.RenderReport(sampleRenderReport())
	assert.Contains(t, output, "Hardcoded password in auth.py")
	assert.Contains(t, output, "src/auth.py:2")
	assert.Contains(t, output, "Missing README")
	assert.Contains(t, output, "HIGH")
}

func TestRenderReport_NoFindings(t *testing.T) {
	report := &domain.Report{Repository: "octocat/clean", QualityScore: 100}
	output := tui.RenderReport(report)
	assert.Contains(t, output, "No issues found")
}

func TestRenderInfo(t *testing.T) {
	info := &domain.RepoInfo{
		FullName:      "octocat/app",
		Description:   "A sample application",
		Language:      "Python",
		Stars:         42,
		Forks:         7,
		OpenIssues:    3,
		DefaultBranch: "main",
		License:       "MIT",
	}
	output := tui.RenderInfo(info)
	assert.Contains(t, output, "octocat/app")
	assert.Contains(t, output, "A sample application")
	assert.Contains(t, output, "Python")
	assert.Contains(t, output, "42")
	assert.Contains(t, output, "MIT")
}

func TestRenderRepoList(t *testing.T) {
	repos := []domain.RepoInfo{
		{FullName: "octocat/one", Language: "Go", Stars: 10, Description: "first repo"},
		{FullName: "octocat/two", Stars: 0},
	}
	output := tui.RenderRepoList(repos)
	assert.Contains(t, output, "octocat/one")
	assert.Contains(t, output, "octocat/two")
	assert.Contains(t, output, "first repo")
}

func TestRenderHistory(t *testing.T) {
	output := tui.RenderHistory([]domain.ScanEntry{
		{Timestamp: "2026-08-25T10:00:00Z", Repository: "octocat/app", Findings: 4, QualityScore: 80},
	})
	assert.Contains(t, output, "octocat/app")
	assert.Contains(t, output, "4 findings")
}

func TestRenderHistory_Empty(t *testing.T) {
	output := tui.RenderHistory(nil)
	assert.Contains(t, output, "No scan history")
}
