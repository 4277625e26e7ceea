package cli_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/armshift/armshift/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// copyFixture clones the fixture project into a fresh temp directory so a
// test can run mutating commands against it. The clone sits one level
// below the temp root, leaving room for the backup sibling.
func copyFixture(t *testing.T) string {
	t.Helper()

	dst := filepath.Join(t.TempDir(), "project")
	src, err := filepath.Abs(fixtureDir)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dst, 0755))

	err = filepath.WalkDir(src, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, relErr := filepath.Rel(src, path)
		if relErr != nil || rel == "." {
			return relErr
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		in, openErr := os.Open(path)
		if openErr != nil {
			return openErr
		}
		defer in.Close()
		out, createErr := os.Create(target)
		if createErr != nil {
			return createErr
		}
		if _, copyErr := io.Copy(out, in); copyErr != nil {
			out.Close()
			return copyErr
		}
		return out.Close()
	})
	require.NoError(t, err)
	return dst
}

func TestMigrateCommand_DryRunDefault(t *testing.T) {
	projectDir := copyFixture(t)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"migrate", projectDir})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Simulation Result")
	assert.Contains(t, buf.String(), "No files were modified")

	data, err := os.ReadFile(filepath.Join(projectDir, "include", "platform_detect.h"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "#ifdef __x86_64__", "dry run must not rewrite files")
}

func TestMigrateCommand_JSON(t *testing.T) {
	projectDir := copyFixture(t)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"migrate", projectDir, "--json"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `"run_id"`)
	assert.Contains(t, buf.String(), `"mode": "simulate"`)
	assert.Contains(t, buf.String(), `"steps"`)
}

func TestMigrateCommand_Apply(t *testing.T) {
	projectDir := copyFixture(t)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"migrate", projectDir, "--apply"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Apply Result")

	// Architecture checks are the high-confidence rewrites.
	data, err := os.ReadFile(filepath.Join(projectDir, "include", "platform_detect.h"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "defined(__aarch64__)")
	assert.Contains(t, string(data), "defined(__arm__)")

	// Intrinsics stay untouched; they only carry review markers.
	data, err = os.ReadFile(filepath.Join(projectDir, "src", "math_kernels.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "_mm_add_ps")

	// The whole tree was backed up next to the project before mutation.
	siblings, err := filepath.Glob(filepath.Join(filepath.Dir(projectDir), "project_backup_*"))
	require.NoError(t, err)
	require.Len(t, siblings, 1)
	_, err = os.Stat(filepath.Join(siblings[0], "src", "math_kernels.cpp"))
	assert.NoError(t, err)
}

func TestMigrateCommand_ApplyRefusesWithoutBackup(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"migrate", copyFixture(t), "--apply", "--backup=false"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply without a backup is not supported")
}

func TestMigrateCommand_DryRunAndApplyExclusive(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"migrate", copyFixture(t), "--dry-run", "--apply"})
	assert.Error(t, cmd.Execute())
}

func TestMigrateCommand_AppliedPlanNotRerun(t *testing.T) {
	projectDir := copyFixture(t)

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"migrate", projectDir, "--apply"})
	require.NoError(t, cmd.Execute())

	cmd = cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"migrate", projectDir, "--apply"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already applied")
}

func TestMigrateCommand_HistoryEmpty(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"migrate", t.TempDir(), "--history"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No migration runs recorded.")
}

func TestMigrateCommand_HistoryAfterRun(t *testing.T) {
	projectDir := copyFixture(t)

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"migrate", projectDir})
	require.NoError(t, cmd.Execute())

	cmd = cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"migrate", projectDir, "--history"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Run History")
	assert.Contains(t, buf.String(), "simulate")
}
