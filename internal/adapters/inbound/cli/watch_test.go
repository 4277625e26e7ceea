package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/armshift/armshift/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A pre-canceled context lets the command render its initial report and
// return instead of blocking on the event loop.
func TestWatchCommand_InitialScanThenStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"watch", fixtureDir})
	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, buf.String(), "ARM Compatibility Scan")
}

func TestWatchCommand_MissingPath(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := cli.NewRootCmdForTest()
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"watch", "does-not-exist"})
	assert.Error(t, cmd.ExecuteContext(ctx))
}
