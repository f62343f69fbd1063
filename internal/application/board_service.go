package application

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/repotriage/repotriage/internal/domain"
)

// BoardService turns a report into task-board cards: one card per finding,
// one per mirrored open issue, and a single summary card. Card-creation
// failures are per-item; the publish keeps going.
type BoardService struct {
	cards  domain.CardWriter
	logger *zap.Logger
}

func NewBoardService(cards domain.CardWriter, logger *zap.Logger) *BoardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardService{cards: cards, logger: logger}
}

// SetupBoard ensures the standard lists and labels exist.
func (b *BoardService) SetupBoard(ctx context.Context) error {
	return b.cards.SetupBoard(ctx)
}

// PublishReport creates cards for every finding in the report, mirrors the
// snapshot's open issues, and finishes with a summary card. It returns the
// number of cards created.
func (b *BoardService) PublishReport(ctx context.Context, report *domain.Report, snap *domain.Snapshot) (int, error) {
	created := 0

	for _, f := range report.Findings {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		if _, err := b.cards.CreateCard(ctx, findingCard(report, f)); err != nil {
			b.logger.Warn("card creation failed", zap.String("rule", f.RuleID), zap.Error(err))
			continue
		}
		created++
	}

	if snap != nil {
		for _, issue := range snap.Issues {
			if err := ctx.Err(); err != nil {
				return created, err
			}
			if _, err := b.cards.CreateCard(ctx, issueCard(report.Repository, issue)); err != nil {
				b.logger.Warn("issue card creation failed", zap.Int("issue", issue.Number), zap.Error(err))
				continue
			}
			created++
		}
	}

	if _, err := b.cards.CreateCard(ctx, summaryCard(report, snap, created)); err != nil {
		b.logger.Warn("summary card creation failed", zap.Error(err))
		return created, nil
	}
	return created + 1, nil
}

// findingCard routes by severity: high-severity findings land on the
// High Priority list, everything else on To Do.
func findingCard(report *domain.Report, f domain.Finding) domain.Card {
	list := domain.ListToDo
	if f.Severity == domain.SeverityHigh {
		list = domain.ListHighPriority
	}

	var b strings.Builder
	b.WriteString("**Code Analysis Issue**\n\n")
	fmt.Fprintf(&b, "**Category:** %s\n", f.Category)
	fmt.Fprintf(&b, "**Severity:** %s\n\n", f.Severity)
	b.WriteString(f.Description)
	if f.File != "" {
		fmt.Fprintf(&b, "\n\n**File:** %s", f.File)
		if f.Line > 0 {
			fmt.Fprintf(&b, ":%d", f.Line)
		}
	}
	fmt.Fprintf(&b, "\n\n**Repository:** %s\n**Quality Score:** %d/100", report.Repository, report.QualityScore)

	return domain.Card{
		Title:       f.Title,
		Description: b.String(),
		List:        list,
		Labels:      []string{report.Repository, string(f.Category), string(f.Severity)},
	}
}

// issueCard mirrors an open tracker issue, routed by its labels.
func issueCard(repoID string, issue domain.RepoIssue) domain.Card {
	list := domain.ListToDo
	for _, l := range issue.Labels {
		switch strings.ToLower(l) {
		case "bug":
			list = domain.ListBugs
		case "enhancement":
			list = domain.ListEnhancements
		}
	}

	body := issue.Body
	if body == "" {
		body = "No description provided"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**GitHub Issue #%d**\n\n%s\n\n", issue.Number, body)
	if issue.Author != "" {
		fmt.Fprintf(&b, "**Created by:** %s\n", issue.Author)
	}
	if len(issue.Labels) > 0 {
		fmt.Fprintf(&b, "**Labels:** %s\n", strings.Join(issue.Labels, ", "))
	}
	fmt.Fprintf(&b, "\n[View on GitHub](https://github.com/%s/issues/%d)", repoID, issue.Number)

	return domain.Card{
		Title:       fmt.Sprintf("Issue #%d: %s", issue.Number, issue.Title),
		Description: b.String(),
		List:        list,
		Labels:      append([]string{repoID}, issue.Labels...),
	}
}

func summaryCard(report *domain.Report, snap *domain.Snapshot, cardsCreated int) domain.Card {
	var b strings.Builder
	b.WriteString("**Repository Analysis Summary**\n\n")
	fmt.Fprintf(&b, "**Repository:** %s\n", report.Repository)
	if snap != nil && snap.Info != nil {
		info := snap.Info
		fmt.Fprintf(&b, "**Language:** %s\n**Stars:** %d\n**Forks:** %d\n**Open Issues:** %d\n",
			info.Language, info.Stars, info.Forks, info.OpenIssues)
	}
	b.WriteString("\n**Analysis Results:**\n")
	fmt.Fprintf(&b, "- **Quality Score:** %d/100\n", report.QualityScore)
	fmt.Fprintf(&b, "- **Findings:** %d\n", report.Total())
	for _, sev := range []domain.Severity{domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow} {
		if n := report.CountsBySeverity[sev]; n > 0 {
			fmt.Fprintf(&b, "  - %s: %d\n", sev, n)
		}
	}
	fmt.Fprintf(&b, "- **Cards Created:** %d\n", cardsCreated)

	name := report.Repository
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	return domain.Card{
		Title:       fmt.Sprintf("Analysis Summary: %s", name),
		Description: b.String(),
		List:        domain.ListSummary,
		Labels:      []string{report.Repository, "summary", domain.ScoreColor(report.QualityScore)},
	}
}
