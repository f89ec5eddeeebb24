package testutil

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_Env(t *testing.T) {
	t.Parallel()

	cmd := Command(t, "settings.conf", "set", "A=1 2")

	assert.Contains(t, cmd.Args, "-test.run=^$")
	assert.Contains(t, cmd.Env, EnvWantHelperProcess+"=1")
	assert.Contains(t, cmd.Env, EnvHelperProcessArgs+`=["settings.conf","set","A=1 2"]`)
}

func TestHelperArgs(t *testing.T) {
	tests := map[string]struct {
		value   string
		want    []string
		wantErr bool
	}{
		"unset":   {},
		"args":    {value: `["a.conf","list"]`, want: []string{"a.conf", "list"}},
		"invalid": {value: `[`, wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Setenv(EnvHelperProcessArgs, tt.value)

			got, err := helperArgs()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunHelperProcess_NotAHelper(t *testing.T) {
	t.Setenv(EnvWantHelperProcess, "")

	called := false
	RunHelperProcess(func() int {
		called = true
		return 0
	})
	assert.False(t, called)
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := WriteFile(t, "a.conf", "A=1\n")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A=1\n", string(data))
}

func TestReadUntil(t *testing.T) {
	t.Parallel()

	r := strings.NewReader("> 1\n> rest")
	got := ReadUntil(t, r, "1\n> ", time.Second)
	assert.Equal(t, "> 1\n> ", got)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "rest", string(rest))
}
