// Package rules holds the static catalog of detection rules. Each rule maps
// a matcher to a finding template; the table is pure data, loaded once and
// never mutated at runtime.
package rules

import (
	"regexp"
	"strings"

	"github.com/repotriage/repotriage/internal/domain"
)

// Hit is one content-rule match inside a file.
type Hit struct {
	Line int // 1-based
	Code string
}

// Rule maps a matcher to a finding template. Exactly one of the matcher
// fields is set: line and file rules run against sampled file content,
// absent rules run once against the snapshot's top-level listing.
type Rule struct {
	ID          string
	Category    domain.Category
	Severity    domain.Severity
	Title       string
	Description string

	line         *regexp.Regexp
	file         func(lines []string) []int
	absent       func(snap *domain.Snapshot) bool
	skipComments bool
}

// RepoLevel reports whether the rule checks repository metadata rather
// than file content.
func (r Rule) RepoLevel() bool { return r.absent != nil }

// FiresOn evaluates a repo-level rule against the snapshot.
func (r Rule) FiresOn(snap *domain.Snapshot) bool {
	return r.absent != nil && r.absent(snap)
}

// Hits evaluates a content rule against a file's lines and returns every
// matching location. Rules are independent: a hit by one rule never
// suppresses another.
func (r Rule) Hits(lines []string) []Hit {
	var hits []Hit
	switch {
	case r.line != nil:
		for i, line := range lines {
			if r.skipComments && isComment(line) {
				continue
			}
			if r.line.MatchString(line) {
				hits = append(hits, Hit{Line: i + 1, Code: strings.TrimSpace(line)})
			}
		}
	case r.file != nil:
		for _, n := range r.file(lines) {
			code := ""
			if n >= 1 && n <= len(lines) {
				code = strings.TrimSpace(lines[n-1])
			}
			hits = append(hits, Hit{Line: n, Code: code})
		}
	}
	return hits
}

// isComment reports whether a line is blank or a full-line comment.
// Pattern rules prone to false positives skip these; marker rules
// (TODO, FIXME) do not, since markers live in comments.
func isComment(line string) bool {
	t := strings.TrimSpace(line)
	return t == "" ||
		strings.HasPrefix(t, "#") ||
		strings.HasPrefix(t, "//") ||
		strings.HasPrefix(t, "/*") ||
		strings.HasPrefix(t, "*")
}

var loopStart = regexp.MustCompile(`^(\s*)(for|while)\b`)

// nestedLoops returns the 1-based lines of loop statements nested inside
// another loop, using indentation as the block structure. It works for
// both brace and offside-rule languages, which is as much structure as a
// line-oriented scan can claim.
func nestedLoops(lines []string) []int {
	var hits []int
	var stack []int // indent widths of enclosing loops

	for i, line := range lines {
		m := loopStart.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		indent := len(m[1])
		for len(stack) > 0 && stack[len(stack)-1] >= indent {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, indent)
		if len(stack) >= 2 {
			hits = append(hits, i+1)
		}
	}
	return hits
}
