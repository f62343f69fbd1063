package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/repotriage/repotriage/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	highTagStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	medTagStyle   = lipgloss.NewStyle().Foreground(warning).Bold(true)
	lowTagStyle   = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport renders a full scan report for the terminal.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("repotriage")
	subtitle := dimStyle.Render(report.Repository)
	scoreLine := lipgloss.NewStyle().
		Bold(true).
		Foreground(scoreColor(report.QualityScore)).
		Render(fmt.Sprintf("quality %d / 100", report.QualityScore))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreLine))
	b.WriteString("\n\n")

	// ── Counts ──
	b.WriteString("  " + titleStyle.Render("Findings") + "  ")
	if n := report.CountsBySeverity[domain.SeverityHigh]; n > 0 {
		b.WriteString(highTagStyle.Render(fmt.Sprintf("%d high", n)) + "  ")
	}
	if n := report.CountsBySeverity[domain.SeverityMedium]; n > 0 {
		b.WriteString(medTagStyle.Render(fmt.Sprintf("%d medium", n)) + "  ")
	}
	if n := report.CountsBySeverity[domain.SeverityLow]; n > 0 {
		b.WriteString(lowTagStyle.Render(fmt.Sprintf("%d low", n)))
	}
	b.WriteString("\n")
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf("%d files analyzed", report.FilesAnalyzed)))
	b.WriteString("\n\n")
	b.WriteString("  " + separatorLine + "\n\n")

	if len(report.Findings) == 0 {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
		return b.String()
	}

	for _, f := range report.Findings {
		renderFinding(&b, f)
	}
	return b.String()
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	b.WriteString("  ")
	b.WriteString(severityTag(f.Severity))
	b.WriteString(" ")
	b.WriteString(titleStyle.Render(f.Title))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("[" + string(f.Category) + "]"))
	b.WriteString("\n")
	if f.File != "" {
		loc := f.File
		if f.Line > 0 {
			loc = fmt.Sprintf("%s:%d", f.File, f.Line)
		}
		b.WriteString("       " + fileStyle.Render(loc) + "\n")
	}
	b.WriteString("       " + dimStyle.Render(f.Description) + "\n\n")
}

// RenderInfo renders repository metadata.
func RenderInfo(info *domain.RepoInfo) string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render(info.FullName) + "\n")
	if info.Description != "" {
		b.WriteString("  " + dimStyle.Render(info.Description) + "\n")
	}
	b.WriteString("\n")

	row := func(label, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("  %-16s %s\n", dimStyle.Render(label), value))
		}
	}
	row("language", info.Language)
	row("stars", fmt.Sprintf("%d", info.Stars))
	row("forks", fmt.Sprintf("%d", info.Forks))
	row("open issues", fmt.Sprintf("%d", info.OpenIssues))
	row("default branch", info.DefaultBranch)
	row("license", info.License)
	if len(info.Topics) > 0 {
		row("topics", strings.Join(info.Topics, ", "))
	}
	row("url", info.URL)
	return b.String()
}

// RenderRepoList renders a one-line-per-repo listing.
func RenderRepoList(repos []domain.RepoInfo) string {
	var b strings.Builder
	for _, r := range repos {
		b.WriteString("  " + titleStyle.Render(r.FullName))
		if r.Language != "" {
			b.WriteString("  " + dimStyle.Render(r.Language))
		}
		b.WriteString("  " + dimStyle.Render(fmt.Sprintf("★ %d", r.Stars)))
		b.WriteString("\n")
		if r.Description != "" {
			b.WriteString("    " + faintStyle.Render(r.Description) + "\n")
		}
	}
	return b.String()
}

// RenderHistory renders prior scan summaries, newest last.
func RenderHistory(entries []domain.ScanEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No scan history yet.") + "\n"
	}
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Scan history") + "\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("  %s  %-32s  %3d findings  quality %d\n",
			dimStyle.Render(e.Timestamp), e.Repository, e.Findings, e.QualityScore))
	}
	return b.String()
}

func severityTag(s domain.Severity) string {
	switch s {
	case domain.SeverityHigh:
		return highTagStyle.Render("HIGH")
	case domain.SeverityMedium:
		return medTagStyle.Render("MED ")
	default:
		return lowTagStyle.Render("LOW ")
	}
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return warning
	default:
		return danger
	}
}
