package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ariel-frischer/setedit/internal/output"
	"github.com/ariel-frischer/setedit/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSession opens content as a settings file and returns a session that
// prints plain text into the returned buffer.
func newSession(t *testing.T, content string) (*Session, *bytes.Buffer, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	st, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	var buf bytes.Buffer
	s := NewSession(st, output.NewPrinter(&buf, false), SessionOptions{Logger: zerolog.Nop()})
	return s, &buf, path
}

func readSettings(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSession_Execute(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content    string
		input      string
		wantOut    string
		wantStatus int
		wantFile   string
	}{
		"list": {
			content:  "A=1\n\nbad line\nB=two words\n",
			input:    "list",
			wantOut:  "A: 1\nInvalid setting at line 2\nInvalid setting at line 3\nB: two words\n",
			wantFile: "A=1\n\nbad line\nB=two words\n",
			// An invalid line is a problem.
			wantStatus: ExitProblem,
		},
		"list clean": {
			content:  "A=1\nB=2\n",
			input:    "list",
			wantOut:  "A: 1\nB: 2\n",
			wantFile: "A=1\nB=2\n",
		},
		"get": {
			content:  "A=1\nA=3\n",
			input:    "get A",
			wantOut:  "1\n",
			wantFile: "A=1\nA=3\n",
		},
		"get empty value": {
			content:  "A=\n",
			input:    "get A",
			wantOut:  "\n",
			wantFile: "A=\n",
		},
		"get missing": {
			content:    "A=1\n",
			input:      "get B",
			wantOut:    "Setting 'B' does not exist\n",
			wantStatus: ExitProblem,
			wantFile:   "A=1\n",
		},
		"set replaces every occurrence": {
			content:  "A=1\nB=2\nA=3\n",
			input:    "set A=hello world",
			wantFile: "A=hello world\nB=2\nA=hello world\n",
		},
		"set missing": {
			content:    "A=1\n",
			input:      "set B=2",
			wantOut:    "Setting 'B' does not exist\n",
			wantStatus: ExitProblem,
			wantFile:   "A=1\n",
		},
		"set invalid": {
			content:    "A=1\n",
			input:      "set A-1",
			wantOut:    "Invalid setting 'A-1'\n",
			wantStatus: ExitProblem,
			wantFile:   "A=1\n",
		},
		"add": {
			content:  "A=1",
			input:    "add B=2",
			wantFile: "A=1\nB=2",
		},
		"add invalid": {
			content:    "A=1\n",
			input:      "add no equals",
			wantOut:    "'name' can be characters a-z, A-Z, 0-9, and _\n\nUsage: add line\n  line: The setting in the format 'name=value'\n",
			wantStatus: ExitProblem,
			wantFile:   "A=1\n",
		},
		"delete": {
			content:  "A=1\nB=2\nA=3\n",
			input:    "delete A",
			wantFile: "B=2\n",
		},
		"delete missing": {
			content:    "A=1\n",
			input:      "delete B",
			wantOut:    "Setting 'B' does not exist\n",
			wantStatus: ExitProblem,
			wantFile:   "A=1\n",
		},
		"fix clean": {
			content:  "A=1\nB=2\n",
			input:    "fix",
			wantOut:  "No problem found\n",
			wantFile: "A=1\nB=2\n",
		},
		"fix duplicates and invalid": {
			content:    "A=1\nbad\nA=2\nB=1\nB=2\n",
			input:      "fix",
			wantOut:    "Invalid setting at line 2\nDeleted duplicated setting A\nDeleted duplicated setting B\n",
			wantStatus: ExitProblem,
			wantFile:   "A=1\nbad\nB=1\n",
		},
		"fix blank line": {
			content:    "A=1\n\nB=2\n",
			input:      "fix",
			wantOut:    "Invalid setting at line 2\n",
			wantStatus: ExitProblem,
			wantFile:   "A=1\n\nB=2\n",
		},
		"leading whitespace": {
			content:  "A=1\n",
			input:    "   get A\n",
			wantOut:  "1\n",
			wantFile: "A=1\n",
		},
		"empty input": {
			content:  "A=1\n",
			input:    "   ",
			wantFile: "A=1\n",
		},
		"unknown command": {
			content:    "A=1\n",
			input:      "remove A",
			wantOut:    "Command 'remove' does not exist\n",
			wantStatus: ExitProblem,
			wantFile:   "A=1\n",
		},
		"missing argument": {
			content:    "A=1\n",
			input:      "get",
			wantOut:    "Incorrect number of arguments\nUsage: get name\n  name: The name of the setting\n",
			wantStatus: ExitProblem,
			wantFile:   "A=1\n",
		},
		"unexpected argument": {
			content:    "A=1\n",
			input:      "list all",
			wantOut:    "Incorrect number of arguments\nUsage: list\n",
			wantStatus: ExitProblem,
			wantFile:   "A=1\n",
		},
		"exit": {
			content:  "A=1\n",
			input:    "exit",
			wantFile: "A=1\n",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, out, path := newSession(t, tt.content)
			require.NoError(t, s.Execute(context.Background(), tt.input))

			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantStatus, s.Status())
			assert.Equal(t, tt.wantFile, readSettings(t, path))
		})
	}
}

func TestSession_LogsMutations(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input         string
		wantOperation string
	}{
		"set":    {input: "set A=2", wantOperation: "set"},
		"add":    {input: "add B=2", wantOperation: "add"},
		"delete": {input: "delete A", wantOperation: "delete"},
		"fix":    {input: "fix", wantOperation: "fix"},
		"get":    {input: "get A"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "settings.conf")
			require.NoError(t, os.WriteFile(path, []byte("A=1\n"), 0o644))
			st, err := store.Open(path)
			require.NoError(t, err)
			t.Cleanup(func() { _ = st.Close() })

			var logs bytes.Buffer
			s := NewSession(st, output.NewPrinter(io.Discard, false), SessionOptions{
				Logger: zerolog.New(&logs).Level(zerolog.DebugLevel),
			})
			require.NoError(t, s.Execute(context.Background(), tt.input))

			if tt.wantOperation == "" {
				assert.NotContains(t, logs.String(), "Operation started")
				return
			}
			assert.Contains(t, logs.String(), `"operation":"`+tt.wantOperation+`"`)
			assert.Contains(t, logs.String(), "Operation completed")
		})
	}
}

func TestSession_Help(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input      string
		wantOut    string
		wantStatus int
	}{
		"all commands": {
			input: "help",
			wantOut: "help: Displays help\n" +
				"list: Lists all settings\n" +
				"fix: Finds invalid settings and deletes duplicated settings\n" +
				"get: Gets the value of a setting\n" +
				"set: Sets the value of a setting\n" +
				"add: Adds a setting\n" +
				"delete: Deletes a setting\n" +
				"exit: Exits this script\n",
		},
		"one command": {
			input:   "help set",
			wantOut: "Usage: set line\n  line: The setting in the format 'name=new_value'\n",
		},
		"command without arguments": {
			input:   "help fix",
			wantOut: "Usage: fix\n",
		},
		"help on help": {
			input:   "help help",
			wantOut: "Usage: help [command]\n  command: The command to display help for\n",
		},
		"unknown command": {
			input:      "help nope",
			wantOut:    "Command 'nope' does not exist\n",
			wantStatus: ExitProblem,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, out, _ := newSession(t, "")
			require.NoError(t, s.Execute(context.Background(), tt.input))
			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantStatus, s.Status())
		})
	}
}

func TestSession_StatusClearedPerCommand(t *testing.T) {
	t.Parallel()

	s, _, _ := newSession(t, "A=1\n")
	ctx := context.Background()

	require.NoError(t, s.Execute(ctx, "get B"))
	assert.Equal(t, ExitProblem, s.Status())

	require.NoError(t, s.Execute(ctx, "get A"))
	assert.Equal(t, ExitSuccess, s.Status())
}

func TestSession_WorkedExample(t *testing.T) {
	t.Parallel()

	s, out, path := newSession(t, "A=1\nB=2\nA=3\n")
	ctx := context.Background()

	require.NoError(t, s.Execute(ctx, "fix"))
	assert.Equal(t, "Deleted duplicated setting A\n", out.String())
	assert.Equal(t, "A=1\nB=2\n", readSettings(t, path))

	out.Reset()
	require.NoError(t, s.Execute(ctx, "get A"))
	assert.Equal(t, "1\n", out.String())

	require.NoError(t, s.Execute(ctx, "set B=9"))
	assert.Equal(t, "A=1\nB=9\n", readSettings(t, path))

	require.NoError(t, s.Execute(ctx, "delete A"))
	assert.Equal(t, "B=9\n", readSettings(t, path))

	out.Reset()
	require.NoError(t, s.Execute(ctx, "get A"))
	assert.Equal(t, "Setting 'A' does not exist\n", out.String())
	assert.Equal(t, ExitProblem, s.Status())
}

func TestSession_Run(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input      string
		banner     bool
		wantOut    string
		wantStatus int
	}{
		"commands until end of input": {
			input:   "get A\nlist\n",
			wantOut: "> 1\n> A: 1\n> ",
		},
		"last line without newline": {
			input:   "get A",
			wantOut: "> 1\n",
		},
		"end of input keeps last status": {
			input:      "get B\n",
			wantOut:    "> Setting 'B' does not exist\n> ",
			wantStatus: ExitProblem,
		},
		"exit clears status": {
			input:   "get B\nexit\nget A\n",
			wantOut: "> Setting 'B' does not exist\n> ",
		},
		"blank lines": {
			input:   "\n  \nget A\n",
			wantOut: "> > > 1\n> ",
		},
		"banner": {
			input:   "",
			banner:  true,
			wantOut: "\nType 'help' for a list of commands and their descriptions\n" +
				"Type 'help' followed by the name of a command to get its usage\n> ",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, out, _ := newSession(t, "A=1\n")
			s.banner = tt.banner

			require.NoError(t, s.Run(context.Background(), strings.NewReader(tt.input)))
			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantStatus, s.Status())
		})
	}
}

func TestSession_RunCustomPrompt(t *testing.T) {
	t.Parallel()

	s, out, _ := newSession(t, "A=1\n")
	s.prompt = "setedit$ "

	require.NoError(t, s.Run(context.Background(), strings.NewReader("get A\n")))
	assert.Equal(t, "setedit$ 1\nsetedit$ ", out.String())
}

func TestSession_RunInterrupted(t *testing.T) {
	t.Parallel()

	s, out, path := newSession(t, "A=1\n")
	require.NoError(t, s.Execute(context.Background(), "get B"))
	out.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The reader never returns, only cancellation can end the loop.
	r, w := io.Pipe()
	defer w.Close()

	require.NoError(t, s.Run(ctx, r))
	assert.Equal(t, "> exit\n", out.String())
	assert.Equal(t, ExitProblem, s.Status())
	assert.Equal(t, []string{"settings.conf"}, dirNames(t, path))
}

func TestReadLines_StopsWhenContextEnds(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	lines := make(chan readResult)
	done := make(chan struct{})
	go func() {
		readLines(ctx, strings.NewReader("exit\nlist\n"), lines)
		close(done)
	}()

	first := <-lines
	assert.Equal(t, "exit\n", first.line)

	// Nobody receives the second line; the reader must still return.
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("reader kept running after its context ended")
	}
}

func TestSession_ExecuteCancelled(t *testing.T) {
	t.Parallel()

	s, _, path := newSession(t, "A=1\nA=2\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Execute(ctx, "fix")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "A=1\nA=2\n", readSettings(t, path))
	assert.Equal(t, []string{"settings.conf"}, dirNames(t, path))
}

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input    string
		wantName string
		wantArg  string
	}{
		"command only":         {input: "list", wantName: "list"},
		"one argument":         {input: "get A", wantName: "get", wantArg: "A"},
		"remainder kept":       {input: "set A=x  y ", wantName: "set", wantArg: "A=x  y "},
		"leading whitespace":   {input: "  \tget   A", wantName: "get", wantArg: "A"},
		"trailing whitespace":  {input: "list   ", wantName: "list"},
		"empty":                {input: ""},
		"whitespace only":      {input: " \t "},
		"tab separates":        {input: "get\tA", wantName: "get", wantArg: "A"},
		"equals in first word": {input: "A=1", wantName: "A=1"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			gotName, gotArg := splitCommand(tt.input)
			assert.Equal(t, tt.wantName, gotName)
			assert.Equal(t, tt.wantArg, gotArg)
		})
	}
}

func dirNames(t *testing.T, path string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
