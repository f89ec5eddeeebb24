package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/setedit/internal/cli"
	"github.com/ariel-frischer/setedit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	testutil.RunHelperProcess(cli.Execute)
	os.Exit(m.Run())
}

func quietConfig(t *testing.T) string {
	t.Helper()
	return testutil.WriteFile(t, "config.yml", testutil.QuietConfig)
}

func TestProcess_ExitStatus(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content    string
		args       []string
		stdin      string
		wantCode   int
		wantStdout string
	}{
		"success": {
			content:    "A=1\n",
			args:       []string{"get", "A"},
			wantStdout: "1\n",
		},
		"problem": {
			content:    "A=1\n",
			args:       []string{"delete", "B"},
			wantCode:   1,
			wantStdout: "Setting 'B' does not exist\n",
		},
		"interactive end of input keeps last status": {
			content:    "A=1\n",
			stdin:      "list\nget B\n",
			wantCode:   1,
			wantStdout: "> A: 1\n> Setting 'B' does not exist\n> ",
		},
		"interactive exit": {
			content:    "A=1\n",
			stdin:      "get B\nexit\n",
			wantStdout: "> Setting 'B' does not exist\n> ",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := testutil.WriteFile(t, "settings.conf", tt.content)
			args := append([]string{"--config", quietConfig(t), path}, tt.args...)

			res := testutil.Run(t, testutil.Command(t, args...), tt.stdin)
			assert.Equal(t, tt.wantCode, res.ExitCode)
			assert.Equal(t, tt.wantStdout, res.Stdout)
		})
	}
}

func TestProcess_EnvironmentError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	res := testutil.Run(t, testutil.Command(t, "--config", quietConfig(t), dir, "list"), "")

	assert.Equal(t, 2, res.ExitCode)
	assert.Contains(t, res.Stderr, "Cannot open a directory")
}

func TestProcess_NoArguments(t *testing.T) {
	t.Parallel()

	res := testutil.Run(t, testutil.Command(t), "")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "Settings file required")
}

func TestProcess_EnvOverridesConfig(t *testing.T) {
	t.Parallel()

	path := testutil.WriteFile(t, "settings.conf", "A=1\n")
	cmd := testutil.Command(t, "--config", quietConfig(t), path)
	cmd.Env = append(cmd.Env, "SETEDIT_PROMPT=setedit$ ")

	res := testutil.Run(t, cmd, "get A\n")
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "setedit$ 1\nsetedit$ ", res.Stdout)
}

func TestProcess_CreatesSettingsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "new.conf")
	res := testutil.Run(t, testutil.Command(t, "--config", quietConfig(t), path, "list"), "")

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "Settings file '"+path+"' not found\nCreating it...\n", res.Stdout)
	_, err := os.Stat(path)
	require.NoError(t, err)
}
