package cli_test

import (
	"bytes"
	"testing"

	"github.com/armshift/armshift/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCommand_Help(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"mcp", "--help"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "MCP")
	assert.Contains(t, buf.String(), "serve")
}

func TestMCPServeCommand_Help(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"mcp", "serve", "--help"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "stdio")
	assert.Contains(t, buf.String(), "--path")
}
