// Package engine applies the rule catalog to a repository snapshot and
// aggregates the raw findings into a report. It is a pure in-process
// transform: identical inputs always produce identical findings.
package engine

import (
	"context"
	"fmt"
	"path"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/repotriage/repotriage/internal/domain"
	"github.com/repotriage/repotriage/internal/domain/rules"
)

// Detect runs every repo-level rule once against the snapshot's top-level
// listing and every content rule against each sampled file. Per-file
// evaluations share no mutable state, so they fan out across a bounded
// worker pool and fan back in by index, keeping output order deterministic.
func Detect(ctx context.Context, snap *domain.Snapshot, files []domain.FileEntry, rs []rules.Rule, workers int) ([]domain.Finding, error) {
	if err := domain.ValidateSnapshot(snap); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = domain.DefaultWorkers
	}

	var findings []domain.Finding
	for _, r := range rs {
		if r.FiresOn(snap) {
			findings = append(findings, domain.Finding{
				RuleID:      r.ID,
				Category:    r.Category,
				Severity:    r.Severity,
				Title:       r.Title,
				Description: r.Description,
			})
		}
	}

	perFile := make([][]domain.Finding, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perFile[i] = detectFile(f, rs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("detection interrupted: %w", err)
	}

	for _, fs := range perFile {
		findings = append(findings, fs...)
	}
	return findings, nil
}

// detectFile evaluates all content rules against one file. Unreadable
// content is a local skip, never an error: the file simply contributes no
// content findings.
func detectFile(f domain.FileEntry, rs []rules.Rule) []domain.Finding {
	if f.Content == "" || !utf8.ValidString(f.Content) {
		return nil
	}
	lines := splitLines(f.Content)

	var findings []domain.Finding
	for _, r := range rs {
		if r.RepoLevel() {
			continue
		}
		for _, hit := range r.Hits(lines) {
			findings = append(findings, domain.Finding{
				RuleID:      r.ID,
				Category:    r.Category,
				Severity:    r.Severity,
				Title:       fmt.Sprintf("%s in %s", r.Title, path.Base(f.Path)),
				Description: fmt.Sprintf("%s on line %d: %s", r.Description, hit.Line, hit.Code),
				File:        f.Path,
				Line:        hit.Line,
			})
		}
	}
	return findings
}

func splitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			line := content[start:i]
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			lines = append(lines, line)
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}
