package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/repotriage/repotriage/internal/adapters/outbound/ai"
	configadapter "github.com/repotriage/repotriage/internal/adapters/outbound/config"
	githubadapter "github.com/repotriage/repotriage/internal/adapters/outbound/github"
	trelloadapter "github.com/repotriage/repotriage/internal/adapters/outbound/trello"
	"github.com/repotriage/repotriage/internal/application"
	"github.com/repotriage/repotriage/internal/domain"
)

// registerTools registers all repotriage MCP tools on the given server.
func registerTools(s *server.MCPServer) {
	// 1. analyze_repository
	s.AddTool(
		mcplib.NewTool("analyze_repository",
			mcplib.WithDescription("Scan a GitHub repository for code-health issues and return a severity-ranked report as JSON"),
			mcplib.WithString("repository_url",
				mcplib.Required(),
				mcplib.Description("GitHub repository URL or owner/repo reference"),
			),
			mcplib.WithBoolean("create_trello_tasks",
				mcplib.Description("Create Trello cards for the findings (requires Trello credentials in the environment)"),
			),
			mcplib.WithNumber("max_files_to_analyze",
				mcplib.Description("Maximum number of source files to analyze (default from config, 50)"),
			),
		),
		handleAnalyzeRepository(),
	)

	// 2. get_repository_info
	s.AddTool(
		mcplib.NewTool("get_repository_info",
			mcplib.WithDescription("Return metadata for a GitHub repository (stars, forks, language, open issues) as JSON"),
			mcplib.WithString("repository_url",
				mcplib.Required(),
				mcplib.Description("GitHub repository URL or owner/repo reference"),
			),
		),
		handleRepositoryInfo(),
	)

	// 3. list_repositories
	s.AddTool(
		mcplib.NewTool("list_repositories",
			mcplib.WithDescription("List repositories for a GitHub user or organization as JSON"),
			mcplib.WithString("username",
				mcplib.Required(),
				mcplib.Description("GitHub user or organization name"),
			),
			mcplib.WithNumber("limit",
				mcplib.Description("Maximum repositories to list (default 30)"),
			),
		),
		handleListRepositories(),
	)

	// 4. create_trello_card
	s.AddTool(
		mcplib.NewTool("create_trello_card",
			mcplib.WithDescription("Create a single card on the configured Trello board"),
			mcplib.WithString("title",
				mcplib.Required(),
				mcplib.Description("Card title"),
			),
			mcplib.WithString("description",
				mcplib.Description("Card description (markdown)"),
			),
			mcplib.WithString("list",
				mcplib.Description("Target list name (default: To Do)"),
			),
		),
		handleCreateCard(),
	)
}

func handleAnalyzeRepository() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		repoURL, err := request.RequireString("repository_url")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		ref, err := domain.ParseRepoRef(repoURL)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cfg, err := configadapter.New().Load(".")
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}
		if maxFiles, ok := request.GetArguments()["max_files_to_analyze"].(float64); ok && maxFiles > 0 {
			cfg.MaxFiles = int(maxFiles)
		}
		creds := configadapter.FromEnv()

		repoSvc := application.NewRepoService(githubadapter.New(creds.GitHubToken, nil), nil, nil)
		snap, err := repoSvc.Snapshot(ctx, ref, domain.FetchOptions{
			MaxFiles:     cfg.MaxFiles,
			MaxFileBytes: cfg.MaxFileBytes,
			MaxIssues:    cfg.MaxIssues,
		}, false)
		if err != nil {
			return errorResult(fmt.Sprintf("fetching repository: %v", err)), nil
		}

		var reviewer domain.Reviewer
		if creds.AnthropicKey != "" {
			reviewer = ai.New(creds.AnthropicKey, cfg.AIModel, cfg.AIMaxBytes, nil)
		}

		report, err := application.NewScanService(cfg, reviewer, nil).Scan(ctx, snap)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}

		createTasks, _ := request.GetArguments()["create_trello_tasks"].(bool)
		if createTasks {
			if !creds.HasTrello() {
				return errorResult("create_trello_tasks requires TRELLO_API_KEY, TRELLO_TOKEN and TRELLO_BOARD_ID"), nil
			}
			board, err := trelloadapter.New(creds.TrelloAPIKey, creds.TrelloToken, creds.TrelloBoardID, nil)
			if err != nil {
				return errorResult(fmt.Sprintf("connecting to Trello: %v", err)), nil
			}
			created, err := application.NewBoardService(board, nil).PublishReport(ctx, report, snap)
			if err != nil {
				return errorResult(fmt.Sprintf("publishing cards: %v", err)), nil
			}
			type reportWithCards struct {
				*domain.Report
				CardsCreated int `json:"cards_created"`
			}
			return jsonResult(reportWithCards{Report: report, CardsCreated: created})
		}

		return jsonResult(report)
	}
}

func handleRepositoryInfo() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		repoURL, err := request.RequireString("repository_url")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		ref, err := domain.ParseRepoRef(repoURL)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		creds := configadapter.FromEnv()
		svc := application.NewRepoService(githubadapter.New(creds.GitHubToken, nil), nil, nil)
		info, err := svc.Info(ctx, ref)
		if err != nil {
			return errorResult(fmt.Sprintf("fetching repository info: %v", err)), nil
		}
		return jsonResult(info)
	}
}

func handleListRepositories() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		username, err := request.RequireString("username")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		limit := 30
		if v, ok := request.GetArguments()["limit"].(float64); ok && v > 0 {
			limit = int(v)
		}

		creds := configadapter.FromEnv()
		svc := application.NewRepoService(githubadapter.New(creds.GitHubToken, nil), nil, nil)
		repos, err := svc.ListByOwner(ctx, username, limit)
		if err != nil {
			return errorResult(fmt.Sprintf("listing repositories: %v", err)), nil
		}
		return jsonResult(repos)
	}
}

func handleCreateCard() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		title, err := request.RequireString("title")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		creds := configadapter.FromEnv()
		if !creds.HasTrello() {
			return errorResult("create_trello_card requires TRELLO_API_KEY, TRELLO_TOKEN and TRELLO_BOARD_ID"), nil
		}

		args := request.GetArguments()
		description, _ := args["description"].(string)
		list, _ := args["list"].(string)
		if list == "" {
			list = domain.ListToDo
		}

		board, err := trelloadapter.New(creds.TrelloAPIKey, creds.TrelloToken, creds.TrelloBoardID, nil)
		if err != nil {
			return errorResult(fmt.Sprintf("connecting to Trello: %v", err)), nil
		}
		if _, err := board.CreateCard(ctx, domain.Card{
			Title:       title,
			Description: description,
			List:        list,
		}); err != nil {
			return errorResult(fmt.Sprintf("creating card: %v", err)), nil
		}
		return textResult(fmt.Sprintf("card %q created on list %q", title, list)), nil
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
