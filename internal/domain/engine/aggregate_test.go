package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repotriage/repotriage/internal/domain"
	"github.com/repotriage/repotriage/internal/domain/engine"
)

func TestAggregate_Dedup(t *testing.T) {
	dup := domain.Finding{
		RuleID: "hardcoded-password", Category: domain.CategorySecurity,
		Severity: domain.SeverityHigh, Title: "first", File: "a.py", Line: 3,
	}
	later := dup
	later.Title = "second"

	report := engine.Aggregate([]domain.Finding{dup, later, later}, "octocat/app")
	require.Equal(t, 1, report.Total())
	assert.Equal(t, "first", report.Findings[0].Title, "dedup keeps the first occurrence")
}

func TestAggregate_Ordering(t *testing.T) {
	findings := []domain.Finding{
		{RuleID: "todo-marker", Category: domain.CategoryQuality, Severity: domain.SeverityLow, File: "z.py", Line: 9},
		{RuleID: "hardcoded-password", Category: domain.CategorySecurity, Severity: domain.SeverityHigh, File: "b.py", Line: 5},
		{RuleID: "nested-loop", Category: domain.CategoryPerformance, Severity: domain.SeverityMedium, File: "a.py", Line: 2},
		{RuleID: "hardcoded-secret", Category: domain.CategorySecurity, Severity: domain.SeverityHigh, File: "a.py", Line: 7},
		{RuleID: "missing-readme", Category: domain.CategoryDocumentation, Severity: domain.SeverityMedium},
	}

	report := engine.Aggregate(findings, "octocat/app")
	require.Equal(t, 5, report.Total())

	ids := make([]string, 0, 5)
	for _, f := range report.Findings {
		ids = append(ids, f.RuleID)
	}
	// High severity first; within a severity, category then file then line.
	assert.Equal(t, []string{
		"hardcoded-secret",
		"hardcoded-password",
		"missing-readme",
		"nested-loop",
		"todo-marker",
	}, ids)
}

func TestAggregate_Counts(t *testing.T) {
	findings := []domain.Finding{
		{RuleID: "a", Category: domain.CategorySecurity, Severity: domain.SeverityHigh, File: "a.py", Line: 1},
		{RuleID: "b", Category: domain.CategorySecurity, Severity: domain.SeverityHigh, File: "a.py", Line: 2},
		{RuleID: "c", Category: domain.CategoryQuality, Severity: domain.SeverityLow, File: "a.py", Line: 3},
	}
	report := engine.Aggregate(findings, "octocat/app")

	assert.Equal(t, 2, report.CountsByCategory[domain.CategorySecurity])
	assert.Equal(t, 1, report.CountsByCategory[domain.CategoryQuality])
	assert.Equal(t, 2, report.CountsBySeverity[domain.SeverityHigh])
	assert.Equal(t, 1, report.CountsBySeverity[domain.SeverityLow])
}

func TestAggregate_Empty(t *testing.T) {
	report := engine.Aggregate(nil, "octocat/clean")
	require.NotNil(t, report)
	assert.Equal(t, 0, report.Total())
	assert.Equal(t, 100, report.QualityScore)
	assert.Equal(t, "octocat/clean", report.Repository)
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestAggregate_QualityScore(t *testing.T) {
	repoLevel := []domain.Finding{
		{RuleID: "missing-readme", Category: domain.CategoryDocumentation, Severity: domain.SeverityMedium},
		{RuleID: "missing-manifest", Category: domain.CategoryStructure, Severity: domain.SeverityMedium},
	}
	report := engine.Aggregate(repoLevel, "octocat/app")
	assert.Equal(t, 75, report.QualityScore)
}

func TestAggregate_QualityScoreIgnoresContentFindings(t *testing.T) {
	findings := []domain.Finding{
		{RuleID: "hardcoded-password", Category: domain.CategorySecurity, Severity: domain.SeverityHigh, File: "a.py", Line: 1},
	}
	report := engine.Aggregate(findings, "octocat/app")
	assert.Equal(t, 100, report.QualityScore)
}
