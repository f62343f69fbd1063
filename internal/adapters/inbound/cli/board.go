package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configadapter "github.com/repotriage/repotriage/internal/adapters/outbound/config"
	trelloadapter "github.com/repotriage/repotriage/internal/adapters/outbound/trello"
	"github.com/repotriage/repotriage/internal/application"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Task-board commands",
	}
	cmd.AddCommand(newBoardSetupCmd())
	return cmd
}

func newBoardSetupCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the standard lists and labels on the Trello board",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := configadapter.FromEnv()
			if !creds.HasTrello() {
				return fmt.Errorf("board setup requires TRELLO_API_KEY, TRELLO_TOKEN and TRELLO_BOARD_ID")
			}

			logger := newLogger(verbose)
			defer func() { _ = logger.Sync() }()

			board, err := trelloadapter.New(creds.TrelloAPIKey, creds.TrelloToken, creds.TrelloBoardID, logger)
			if err != nil {
				return err
			}
			if err := application.NewBoardService(board, logger).SetupBoard(cmd.Context()); err != nil {
				return fmt.Errorf("board setup failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Board ready.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	return cmd
}
