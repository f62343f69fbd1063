// Package ai implements domain.Reviewer on top of the Anthropic API. It is
// an optional augmentation: when no API key is configured the adapter is
// simply never constructed, and rule-based findings stand on their own.
package ai

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/repotriage/repotriage/internal/domain"
)

// Reviewer sends bounded file content to the model and parses its JSON
// response into findings.
type Reviewer struct {
	client   anthropic.Client
	model    string
	maxBytes int
	logger   *zap.Logger
}

func New(apiKey, model string, maxBytes int, logger *zap.Logger) *Reviewer {
	if model == "" {
		model = domain.DefaultAIModel
	}
	if maxBytes <= 0 {
		maxBytes = domain.DefaultAIMaxBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reviewer{
		client:   anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:    model,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Review asks the model for findings on one file. Any provider failure or
// unparseable response is returned as an error for the caller to treat as
// a per-file skip.
func (r *Reviewer) Review(ctx context.Context, file domain.FileEntry) ([]domain.Finding, error) {
	content := file.Content
	if len(content) > r.maxBytes {
		content = content[:r.maxBytes]
	}

	resp, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(r.model),
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(reviewPrompt(file.Path, content))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic call for %s: %w", file.Path, err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	findings, err := ParseFindings(text, file.Path)
	if err != nil {
		return nil, fmt.Errorf("parsing review of %s: %w", file.Path, err)
	}

	r.logger.Debug("ai review complete",
		zap.String("file", file.Path),
		zap.Int("findings", len(findings)),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens))

	return findings, nil
}

func reviewPrompt(path, content string) string {
	return fmt.Sprintf(`You are an expert code reviewer. Analyze the following file and report concrete issues.

File: %s

%s

Respond with ONLY a JSON array, no surrounding prose. Each element:
{
  "category": "documentation|security|performance|quality|structure",
  "severity": "low|medium|high",
  "title": "short issue title",
  "description": "what is wrong and how to fix it",
  "line": approximate line number or 0
}

Report genuine problems only. An empty array is a valid answer.`, path, content)
}
