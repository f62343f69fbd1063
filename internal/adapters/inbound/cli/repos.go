package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	configadapter "github.com/repotriage/repotriage/internal/adapters/outbound/config"
	githubadapter "github.com/repotriage/repotriage/internal/adapters/outbound/github"
	"github.com/repotriage/repotriage/internal/adapters/outbound/tui"
	"github.com/repotriage/repotriage/internal/application"
)

func newReposCmd() *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "repos <user>",
		Short: "List repositories for a user or organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := configadapter.FromEnv()
			svc := application.NewRepoService(githubadapter.New(creds.GitHubToken, nil), nil, nil)
			repos, err := svc.ListByOwner(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(repos)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRepoList(repos))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 30, "Maximum repositories to list")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
