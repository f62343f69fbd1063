package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/repotriage/repotriage/internal/adapters/outbound/history"
	"github.com/repotriage/repotriage/internal/domain"
	"github.com/repotriage/repotriage/internal/domain/rules"
)

// registerResources registers all repotriage MCP resources on the given server.
func registerResources(s *server.MCPServer) {
	// 1. repotriage://rules - the detection rule catalog
	s.AddResource(
		mcplib.NewResource(
			"repotriage://rules",
			"Rule Catalog",
			mcplib.WithResourceDescription("The full catalog of code-health detection rules"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(),
	)

	// 2. repotriage://history - past scan results
	s.AddResource(
		mcplib.NewResource(
			"repotriage://history",
			"Scan History",
			mcplib.WithResourceDescription("History of past repository scans"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(),
	)
}

func handleRulesResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(rules.All(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling rules: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "repotriage://rules",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleHistoryResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := history.New(".").Load()
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		if entries == nil {
			entries = []domain.ScanEntry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling history: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "repotriage://history",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
