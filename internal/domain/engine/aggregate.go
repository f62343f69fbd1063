package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/repotriage/repotriage/internal/domain"
	"github.com/repotriage/repotriage/internal/domain/rules"
)

type dedupKey struct {
	ruleID string
	file   string
	line   int
}

// Aggregate normalizes raw findings into a report: deduplicates by
// (rule, file, line) keeping the first occurrence, imposes a total order,
// and tallies counts. An empty input yields an empty report, not an error.
func Aggregate(raw []domain.Finding, repoID string) *domain.Report {
	seen := make(map[dedupKey]bool, len(raw))
	findings := make([]domain.Finding, 0, len(raw))
	for _, f := range raw {
		key := dedupKey{f.RuleID, f.File, f.Line}
		if seen[key] {
			continue
		}
		seen[key] = true
		findings = append(findings, f)
	}

	// Severity descending, then category, file, line, rule: a total order,
	// so repeated runs produce byte-identical reports.
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.RuleID < b.RuleID
	})

	byCategory := make(map[domain.Category]int)
	bySeverity := make(map[domain.Severity]int)
	for _, f := range findings {
		byCategory[f.Category]++
		bySeverity[f.Severity]++
	}

	return &domain.Report{
		ID:               uuid.NewString(),
		Repository:       repoID,
		GeneratedAt:      time.Now().UTC(),
		Findings:         findings,
		CountsByCategory: byCategory,
		CountsBySeverity: bySeverity,
		QualityScore:     qualityScore(findings),
	}
}

// qualityScore starts at 100 and deducts the penalty for each repo-level
// rule that fired, flooring at zero.
func qualityScore(findings []domain.Finding) int {
	score := 100
	for _, f := range findings {
		if f.File == "" {
			score -= rules.QualityPenalty[f.RuleID]
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}
