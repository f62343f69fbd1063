package domain_test

import (
	"testing"

	"github.com/repotriage/repotriage/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSeverity_Rank(t *testing.T) {
	assert.Greater(t, domain.SeverityHigh.Rank(), domain.SeverityMedium.Rank())
	assert.Greater(t, domain.SeverityMedium.Rank(), domain.SeverityLow.Rank())
	assert.Equal(t, 0, domain.Severity("bogus").Rank())
}

func TestSeverity_Valid(t *testing.T) {
	assert.True(t, domain.SeverityHigh.Valid())
	assert.True(t, domain.SeverityMedium.Valid())
	assert.True(t, domain.SeverityLow.Valid())
	assert.False(t, domain.Severity("").Valid())
	assert.False(t, domain.Severity("critical").Valid())
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range []domain.Category{
		domain.CategoryDocumentation,
		domain.CategorySecurity,
		domain.CategoryPerformance,
		domain.CategoryQuality,
		domain.CategoryStructure,
	} {
		assert.True(t, c.Valid(), "category %q", c)
	}
	assert.False(t, domain.Category("style").Valid())
}

func TestScoreColor(t *testing.T) {
	tests := []struct {
		score int
		color string
	}{
		{100, "green"}, {80, "green"}, {79, "yellow"}, {60, "yellow"}, {59, "red"}, {0, "red"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.color, domain.ScoreColor(tt.score), "score %d", tt.score)
	}
}

func TestReport_Total(t *testing.T) {
	r := &domain.Report{Findings: []domain.Finding{{RuleID: "a"}, {RuleID: "b"}}}
	assert.Equal(t, 2, r.Total())
}
