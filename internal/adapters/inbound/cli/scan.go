package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/repotriage/repotriage/internal/adapters/outbound/ai"
	"github.com/repotriage/repotriage/internal/adapters/outbound/cache"
	configadapter "github.com/repotriage/repotriage/internal/adapters/outbound/config"
	githubadapter "github.com/repotriage/repotriage/internal/adapters/outbound/github"
	"github.com/repotriage/repotriage/internal/adapters/outbound/gitrepo"
	"github.com/repotriage/repotriage/internal/adapters/outbound/history"
	trelloadapter "github.com/repotriage/repotriage/internal/adapters/outbound/trello"
	"github.com/repotriage/repotriage/internal/adapters/outbound/tui"
	"github.com/repotriage/repotriage/internal/application"
	"github.com/repotriage/repotriage/internal/domain"
)

func newScanCmd() *cobra.Command {
	var (
		localPath   string
		maxFiles    int
		jsonOutput  bool
		createCards bool
		refresh     bool
		noAI        bool
		verbose     bool
		showHistory bool
	)

	cmd := &cobra.Command{
		Use:   "scan [owner/repo]",
		Short: "Scan a repository for code-health issues",
		Long:  "Analyze a GitHub repository (or a local clone with --local) and produce a severity-ranked report. With --cards, each finding becomes a Trello card.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose)
			defer func() { _ = logger.Sync() }()

			if showHistory {
				entries, err := history.New(".").Load()
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			cfg, err := configadapter.New().Load(".")
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if maxFiles > 0 {
				cfg.MaxFiles = maxFiles
			}
			creds := configadapter.FromEnv()

			snap, err := loadSnapshot(cmd, args, localPath, cfg, creds, refresh, logger)
			if err != nil {
				return err
			}

			var reviewer domain.Reviewer
			if creds.AnthropicKey != "" && !noAI {
				reviewer = ai.New(creds.AnthropicKey, cfg.AIModel, cfg.AIMaxBytes, logger)
			}

			svc := application.NewScanService(cfg, reviewer, logger)
			report, err := svc.Scan(cmd.Context(), snap)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			// Best-effort history entry.
			_ = history.New(".").Save(domain.ScanEntry{
				Timestamp:    time.Now().Format(time.RFC3339),
				Repository:   report.Repository,
				Findings:     report.Total(),
				QualityScore: report.QualityScore,
				High:         report.CountsBySeverity[domain.SeverityHigh],
				Medium:       report.CountsBySeverity[domain.SeverityMedium],
				Low:          report.CountsBySeverity[domain.SeverityLow],
			})

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if createCards {
				if !creds.HasTrello() {
					return fmt.Errorf("card creation requires TRELLO_API_KEY, TRELLO_TOKEN and TRELLO_BOARD_ID")
				}
				board, err := trelloadapter.New(creds.TrelloAPIKey, creds.TrelloToken, creds.TrelloBoardID, logger)
				if err != nil {
					return err
				}
				created, err := application.NewBoardService(board, logger).PublishReport(cmd.Context(), report, snap)
				if err != nil {
					return fmt.Errorf("publishing cards: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d cards created\n", created)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&localPath, "local", "", "Scan a local clone instead of fetching from GitHub")
	cmd.Flags().IntVar(&maxFiles, "max-files", 0, "Maximum number of files to analyze (default from config, 50)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&createCards, "cards", false, "Create Trello cards for findings")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the snapshot cache")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "Disable the AI review path even if a key is configured")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show scan history and exit")

	return cmd
}

func loadSnapshot(cmd *cobra.Command, args []string, localPath string, cfg domain.Config, creds configadapter.Credentials, refresh bool, logger *zap.Logger) (*domain.Snapshot, error) {
	opts := domain.FetchOptions{
		MaxFiles:     cfg.MaxFiles,
		MaxFileBytes: cfg.MaxFileBytes,
		MaxIssues:    cfg.MaxIssues,
	}

	if localPath != "" {
		snap, err := gitrepo.New().Snapshot(localPath, opts)
		if err != nil {
			return nil, fmt.Errorf("reading local repository: %w", err)
		}
		return snap, nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("a repository reference or --local path is required")
	}
	ref, err := domain.ParseRepoRef(args[0])
	if err != nil {
		return nil, err
	}

	svc := application.NewRepoService(
		githubadapter.New(creds.GitHubToken, logger),
		cache.New(".repotriage/cache"),
		logger,
	)
	return svc.Snapshot(cmd.Context(), ref, opts, refresh)
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
