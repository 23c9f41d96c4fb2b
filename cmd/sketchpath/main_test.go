package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores defaults; cobra keeps flag values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

const scenario = `
width: 7
height: 5
obstacles:
  - from: [3, 0]
    to: [3, 3]
routes:
  - start: [0, 0]
    goal: [6, 0]
`

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sketchpath version "), out)
}

func TestRoute_Scenario(t *testing.T) {
	png := filepath.Join(t.TempDir(), "out.png")
	out, err := run(t, "route", "-s", writeScenario(t), "--color", "never", "--png", png, "0,4", "6,4")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7, out)
	assert.True(t, strings.HasPrefix(lines[0], "route 1 (0,0)→(6,0): found=true"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "route 2 (0,4)→(6,4): found=false"), lines[1])
	assert.Equal(t, "S**#..G", lines[2])
	assert.Equal(t, "..***..", lines[6], "the first route detours along the bottom row")

	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRoute_Errors(t *testing.T) {
	_, err := run(t, "route", "--color", "never", "0,0")
	assert.Error(t, err)

	_, err = run(t, "route", "--color", "never", "0,0", "nope")
	assert.Error(t, err)

	_, err = run(t, "route", "--color", "sepia")
	assert.ErrorContains(t, err, "unknown --color")

	_, err = run(t, "route", "-s", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, "route", "--log-level", "loud")
	assert.ErrorContains(t, err, "unknown level")
}
