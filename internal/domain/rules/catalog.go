package rules

import (
	"regexp"
	"strings"

	"github.com/repotriage/repotriage/internal/domain"
)

// catalog is the full rule table. Category and severity assignments follow
// the established taxonomy; in particular wildcard imports stay under
// performance rather than quality.
var catalog = []Rule{
	// Repo-level absence rules.
	{
		ID:          "missing-readme",
		Category:    domain.CategoryDocumentation,
		Severity:    domain.SeverityMedium,
		Title:       "Missing README",
		Description: "Repository lacks a README file, which is essential for project documentation.",
		absent:      func(s *domain.Snapshot) bool { return !hasReadme(s) },
	},
	{
		ID:          "missing-license",
		Category:    domain.CategoryDocumentation,
		Severity:    domain.SeverityLow,
		Title:       "Missing license",
		Description: "Repository does not have a license file, which may limit its usability.",
		absent:      func(s *domain.Snapshot) bool { return !hasLicense(s) },
	},
	{
		ID:          "missing-manifest",
		Category:    domain.CategoryStructure,
		Severity:    domain.SeverityMedium,
		Title:       "Missing dependency manifest",
		Description: "No dependency management file found, making it difficult to set up the project.",
		absent:      func(s *domain.Snapshot) bool { return !hasManifest(s) },
	},
	{
		ID:          "missing-tests",
		Category:    domain.CategoryStructure,
		Severity:    domain.SeverityMedium,
		Title:       "Missing tests",
		Description: "No test directory found, which may indicate lack of testing.",
		absent:      func(s *domain.Snapshot) bool { return !hasTestDir(s) },
	},
	{
		ID:          "missing-ci",
		Category:    domain.CategoryStructure,
		Severity:    domain.SeverityLow,
		Title:       "Missing CI configuration",
		Description: "No CI configuration found; automated builds and checks would improve the development workflow.",
		absent:      func(s *domain.Snapshot) bool { return !hasCIConfig(s) },
	},

	// Security rules: textual pattern presence, always high severity.
	{
		ID:           "hardcoded-password",
		Category:     domain.CategorySecurity,
		Severity:     domain.SeverityHigh,
		Title:        "Hardcoded password",
		Description:  "Password literal assigned in source",
		line:         regexp.MustCompile(`(?i)password\s*=\s*['"][^'"]+['"]`),
		skipComments: true,
	},
	{
		ID:           "hardcoded-api-key",
		Category:     domain.CategorySecurity,
		Severity:     domain.SeverityHigh,
		Title:        "Hardcoded API key",
		Description:  "API key literal assigned in source",
		line:         regexp.MustCompile(`(?i)api_?key\s*=\s*['"][^'"]+['"]`),
		skipComments: true,
	},
	{
		ID:           "hardcoded-secret",
		Category:     domain.CategorySecurity,
		Severity:     domain.SeverityHigh,
		Title:        "Hardcoded secret",
		Description:  "Secret literal assigned in source",
		line:         regexp.MustCompile(`(?i)secret\s*=\s*['"][^'"]+['"]`),
		skipComments: true,
	},
	{
		ID:           "dynamic-eval",
		Category:     domain.CategorySecurity,
		Severity:     domain.SeverityHigh,
		Title:        "Dynamic code evaluation",
		Description:  "Dynamic evaluation construct",
		line:         regexp.MustCompile(`(?i)\b(eval|exec)\s*\(`),
		skipComments: true,
	},
	{
		ID:           "shell-command",
		Category:     domain.CategorySecurity,
		Severity:     domain.SeverityHigh,
		Title:        "Shelled-out command execution",
		Description:  "System command execution",
		line:         regexp.MustCompile(`(?i)(os\.system|subprocess\.call)\s*\(`),
		skipComments: true,
	},

	// Performance rules.
	{
		ID:          "nested-loop",
		Category:    domain.CategoryPerformance,
		Severity:    domain.SeverityMedium,
		Title:       "Nested loops",
		Description: "Loop nested inside another loop",
		file:        nestedLoops,
	},
	{
		ID:           "unbounded-loop",
		Category:     domain.CategoryPerformance,
		Severity:     domain.SeverityMedium,
		Title:        "Unbounded loop",
		Description:  "Loop without a visible exit condition",
		line:         regexp.MustCompile(`(?i)(while\s+True\s*:|while\s*\(\s*(true|1)\s*\)|for\s*\(\s*;\s*;\s*\))`),
		skipComments: true,
	},
	{
		ID:           "wildcard-import",
		Category:     domain.CategoryPerformance,
		Severity:     domain.SeverityMedium,
		Title:        "Wildcard import",
		Description:  "Wildcard import statement",
		line:         regexp.MustCompile(`(from\s+[\w.]+\s+import\s+\*|import\s+[\w.]+\.\*)`),
		skipComments: true,
	},

	// Quality rules.
	{
		ID:          "todo-marker",
		Category:    domain.CategoryQuality,
		Severity:    domain.SeverityLow,
		Title:       "Marker comment",
		Description: "Marker comment left in source",
		line:        regexp.MustCompile(`(?i)\b(TODO|FIXME|XXX|HACK):`),
	},
	{
		ID:          "debug-statement",
		Category:    domain.CategoryQuality,
		Severity:    domain.SeverityLow,
		Title:       "Debug output",
		Description: "Debug output statement left in source",
		line:        regexp.MustCompile(`(?i)(\bprint\s*\(|console\.log\s*\(|\bdebugger;)`),
	},

	// The model reviewer's findings carry this ID. It has no matcher: the
	// reviewer is its own producer, the entry only anchors the ID in the
	// registry so every finding resolves through ByID.
	{
		ID:          "ai-review",
		Category:    domain.CategoryQuality,
		Severity:    domain.SeverityMedium,
		Title:       "AI review finding",
		Description: "Issue reported by the language-model reviewer",
	},
}

// All returns every rule in the catalog.
func All() []Rule {
	out := make([]Rule, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks up a single rule.
func ByID(id string) (Rule, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// QualityPenalty is the score deduction applied when a repo-level rule
// fires. Scores start at 100 and never go below zero.
var QualityPenalty = map[string]int{
	"missing-readme":   10,
	"missing-license":  5,
	"missing-manifest": 15,
	"missing-tests":    10,
	"missing-ci":       5,
}

func hasReadme(s *domain.Snapshot) bool {
	return topLevelMatch(s, func(name string) bool {
		return name == "readme" || strings.HasPrefix(name, "readme.")
	})
}

func hasLicense(s *domain.Snapshot) bool {
	return topLevelMatch(s, func(name string) bool {
		return strings.HasPrefix(name, "license") || strings.HasPrefix(name, "copying")
	})
}

var manifestNames = map[string]bool{
	"requirements.txt": true,
	"pyproject.toml":   true,
	"setup.py":         true,
	"package.json":     true,
	"go.mod":           true,
	"cargo.toml":       true,
	"gemfile":          true,
	"pom.xml":          true,
	"build.gradle":     true,
	"composer.json":    true,
}

func hasManifest(s *domain.Snapshot) bool {
	return topLevelMatch(s, func(name string) bool { return manifestNames[name] })
}

var testDirNames = map[string]bool{
	"tests":     true,
	"test":      true,
	"spec":      true,
	"__tests__": true,
}

func hasTestDir(s *domain.Snapshot) bool {
	return topLevelMatch(s, func(name string) bool { return testDirNames[name] })
}

var ciNames = map[string]bool{
	".github":             true,
	".gitlab-ci.yml":      true,
	".circleci":           true,
	".travis.yml":         true,
	"jenkinsfile":         true,
	"azure-pipelines.yml": true,
}

func hasCIConfig(s *domain.Snapshot) bool {
	return topLevelMatch(s, func(name string) bool { return ciNames[name] })
}

func topLevelMatch(s *domain.Snapshot, match func(lowerName string) bool) bool {
	for _, name := range s.TopLevel {
		if match(strings.ToLower(name)) {
			return true
		}
	}
	return false
}
