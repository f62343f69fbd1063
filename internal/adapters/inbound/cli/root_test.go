package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repotriage/repotriage/internal/adapters/inbound/cli"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := cli.NewRootCmdForTest()
	require.NotNil(t, root)

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"version", "scan", "info", "repos", "board", "mcp"} {
		assert.True(t, names[want], "subcommand %q should be registered", want)
	}
}

func TestVersionCmd(t *testing.T) {
	root := cli.NewRootCmdForTest()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "repotriage")
}

func TestScanCmd_RequiresTarget(t *testing.T) {
	root := cli.NewRootCmdForTest()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"scan"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository reference")
}

func TestScanCmd_RejectsBadReference(t *testing.T) {
	root := cli.NewRootCmdForTest()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"scan", "not-a-repo"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid repository reference")
}

func TestInfoCmd_RejectsBadReference(t *testing.T) {
	root := cli.NewRootCmdForTest()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"info", "not-a-repo"})

	err := root.Execute()
	assert.Error(t, err)
}

func TestBoardSetupCmd_RequiresCredentials(t *testing.T) {
	t.Setenv("TRELLO_API_KEY", "")
	t.Setenv("TRELLO_TOKEN", "")
	t.Setenv("TRELLO_BOARD_ID", "")

	root := cli.NewRootCmdForTest()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"board", "setup"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRELLO")
}
