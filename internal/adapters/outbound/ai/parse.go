package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/repotriage/repotriage/internal/domain"
)

// AIRuleID marks findings produced by the model reviewer. The rule
// registry carries a matcherless entry under this ID, so reviewer findings
// resolve like any catalog finding and dedup treats them the same.
const AIRuleID = "ai-review"

type rawFinding struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Line        int    `json:"line"`
}

// ParseFindings extracts the JSON array from a model response and maps it
// onto the finding shape. Entries the model failed to classify default to
// quality/medium rather than being dropped.
func ParseFindings(text, filePath string) ([]domain.Finding, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("response contains no JSON array")
	}

	var raw []rawFinding
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("malformed JSON array: %w", err)
	}

	findings := make([]domain.Finding, 0, len(raw))
	for _, r := range raw {
		if r.Title == "" && r.Description == "" {
			continue
		}
		title := r.Title
		if title == "" {
			title = "AI review finding"
		}
		line := r.Line
		if line < 0 {
			line = 0
		}
		findings = append(findings, domain.Finding{
			RuleID:      AIRuleID,
			Category:    normalizeCategory(r.Category),
			Severity:    normalizeSeverity(r.Severity),
			Title:       title,
			Description: r.Description,
			File:        filePath,
			Line:        line,
		})
	}
	return findings, nil
}

func normalizeCategory(s string) domain.Category {
	c := domain.Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c
	}
	return domain.CategoryQuality
}

func normalizeSeverity(s string) domain.Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "critical":
		return domain.SeverityHigh
	case "low", "info":
		return domain.SeverityLow
	case "medium":
		return domain.SeverityMedium
	}
	return domain.SeverityMedium
}
