package config

import "os"

// Credentials are read from the environment, never from the config file.
type Credentials struct {
	GitHubToken   string
	TrelloAPIKey  string
	TrelloToken   string
	TrelloBoardID string
	AnthropicKey  string
}

// FromEnv reads all collaborator credentials. Empty values disable the
// corresponding integration: no Anthropic key means no AI review path, no
// Trello credentials means no card creation.
func FromEnv() Credentials {
	return Credentials{
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		TrelloAPIKey:  os.Getenv("TRELLO_API_KEY"),
		TrelloToken:   os.Getenv("TRELLO_TOKEN"),
		TrelloBoardID: os.Getenv("TRELLO_BOARD_ID"),
		AnthropicKey:  os.Getenv("ANTHROPIC_API_KEY"),
	}
}

// HasTrello reports whether the full Trello credential set is present.
func (c Credentials) HasTrello() bool {
	return c.TrelloAPIKey != "" && c.TrelloToken != "" && c.TrelloBoardID != ""
}
