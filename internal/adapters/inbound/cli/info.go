package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	configadapter "github.com/repotriage/repotriage/internal/adapters/outbound/config"
	githubadapter "github.com/repotriage/repotriage/internal/adapters/outbound/github"
	"github.com/repotriage/repotriage/internal/adapters/outbound/tui"
	"github.com/repotriage/repotriage/internal/application"
	"github.com/repotriage/repotriage/internal/domain"
)

func newInfoCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "info <owner/repo>",
		Short: "Show repository metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := domain.ParseRepoRef(args[0])
			if err != nil {
				return err
			}

			creds := configadapter.FromEnv()
			svc := application.NewRepoService(githubadapter.New(creds.GitHubToken, nil), nil, nil)
			info, err := svc.Info(cmd.Context(), ref)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderInfo(info))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
