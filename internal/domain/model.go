package domain

import (
	"time"
)

// Severity ranks how urgent a finding is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank returns a sortable weight for the severity, higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether the severity is one of the enumerated values.
func (s Severity) Valid() bool { return s.Rank() > 0 }

// Category groups findings by the kind of problem they describe.
type Category string

const (
	CategoryDocumentation Category = "documentation"
	CategorySecurity      Category = "security"
	CategoryPerformance   Category = "performance"
	CategoryQuality       Category = "quality"
	CategoryStructure     Category = "structure"
)

// Valid reports whether the category is one of the enumerated values.
func (c Category) Valid() bool {
	switch c {
	case CategoryDocumentation, CategorySecurity, CategoryPerformance, CategoryQuality, CategoryStructure:
		return true
	}
	return false
}

// FileEntry is a single sampled file from a repository snapshot.
type FileEntry struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	Content string `json:"content,omitempty"`
}

// RepoIssue is an open issue mirrored from the repository's tracker.
type RepoIssue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Labels    []string  `json:"labels,omitempty"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// RepoInfo holds repository metadata as reported by the hosting service.
type RepoInfo struct {
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description,omitempty"`
	Language      string    `json:"language,omitempty"`
	Stars         int       `json:"stars"`
	Forks         int       `json:"forks"`
	OpenIssues    int       `json:"open_issues"`
	DefaultBranch string    `json:"default_branch,omitempty"`
	License       string    `json:"license,omitempty"`
	Topics        []string  `json:"topics,omitempty"`
	URL           string    `json:"url,omitempty"`
	Private       bool      `json:"private,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// Snapshot is the complete, already-fetched view of a repository at scan
// time. The engine never mutates it and makes no network calls of its own.
type Snapshot struct {
	ID            string      `json:"id"` // owner/name
	DefaultBranch string      `json:"default_branch,omitempty"`
	TopLevel      []string    `json:"top_level"` // root-level file and directory names
	Files         []FileEntry `json:"files"`
	Issues        []RepoIssue `json:"issues,omitempty"`
	Info          *RepoInfo   `json:"info,omitempty"`
}

// Finding is one detected issue instance.
type Finding struct {
	RuleID      string   `json:"rule_id"`
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	File        string   `json:"file,omitempty"`
	Line        int      `json:"line,omitempty"` // 1-based; 0 for repo-level findings
}

// Report is the aggregated, deduplicated, ordered output of one scan.
type Report struct {
	ID               string           `json:"id"`
	Repository       string           `json:"repository"`
	GeneratedAt      time.Time        `json:"generated_at"`
	Findings         []Finding        `json:"findings"`
	CountsByCategory map[Category]int `json:"counts_by_category"`
	CountsBySeverity map[Severity]int `json:"counts_by_severity"`
	QualityScore     int              `json:"quality_score"`
	FilesAnalyzed    int              `json:"files_analyzed"`
}

// Total returns the number of deduplicated findings in the report.
func (r *Report) Total() int { return len(r.Findings) }

// ScoreColor maps a quality score to a traffic-light label color,
// mirroring the summary-card convention of the task board.
func ScoreColor(score int) string {
	switch {
	case score >= 80:
		return "green"
	case score >= 60:
		return "yellow"
	default:
		return "red"
	}
}

// Card is the shape handed to the task-board collaborator: one card per
// finding plus one summary card per scan.
type Card struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	List        string   `json:"list"`
	Labels      []string `json:"labels,omitempty"`
}

// ScanEntry is one line of persisted scan history.
type ScanEntry struct {
	Timestamp    string `json:"timestamp"`
	Repository   string `json:"repository"`
	Findings     int    `json:"findings"`
	QualityScore int    `json:"quality_score"`
	High         int    `json:"high"`
	Medium       int    `json:"medium"`
	Low          int    `json:"low"`
}
