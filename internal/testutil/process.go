// Package testutil provides test utilities and helpers for setedit tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// HelperProcessEnvVars contains the environment variable names used by RunHelperProcess.
const (
	// EnvWantHelperProcess signals that the test binary should run as setedit.
	EnvWantHelperProcess = "GO_WANT_HELPER_PROCESS"
	// EnvHelperProcessArgs contains the command-line arguments (JSON array).
	EnvHelperProcessArgs = "GO_HELPER_PROCESS_ARGS"
)

// QuietConfig is a config file body that turns off colors, the banner and
// logging so process output holds only command output.
const QuietConfig = "color: never\nbanner: false\nlog_level: disabled\n"

// RunHelperProcess is called from TestMain. When the test binary was started
// by Command it runs main with the forwarded arguments and exits with its
// status; otherwise it returns immediately and the tests run normally.
//
// Usage in a main package test file:
//
//	func TestMain(m *testing.M) {
//	    testutil.RunHelperProcess(cli.Execute)
//	    os.Exit(m.Run())
//	}
func RunHelperProcess(main func() int) {
	if os.Getenv(EnvWantHelperProcess) != "1" {
		return
	}

	args, err := helperArgs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(3)
	}
	os.Args = append([]string{"setedit"}, args...)
	os.Exit(main())
}

func helperArgs() ([]string, error) {
	argsJSON := os.Getenv(EnvHelperProcessArgs)
	if argsJSON == "" {
		return nil, nil
	}
	var args []string
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return nil, fmt.Errorf("parsing helper process args: %w", err)
	}
	return args, nil
}

// Command returns an exec.Cmd that re-runs the test binary as setedit with
// args.
func Command(t *testing.T, args ...string) *exec.Cmd {
	t.Helper()

	testBinary, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to get test binary path: %v", err)
	}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("encoding helper process args: %v", err)
	}

	cmd := exec.Command(testBinary, "-test.run=^$")
	cmd.Env = append(os.Environ(),
		EnvWantHelperProcess+"=1",
		EnvHelperProcessArgs+"="+string(argsJSON),
	)
	return cmd
}

// ProcessResult captures the result of running a helper process.
type ProcessResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes cmd with stdin and captures its output and exit code.
func Run(t *testing.T, cmd *exec.Cmd, stdin string) *ProcessResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		t.Fatalf("running helper process: %v", err)
	}

	return &ProcessResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
}

// WriteFile writes content to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// ReadUntil reads from r until the text read so far ends with suffix, and
// returns that text. It fails the test after timeout.
func ReadUntil(t *testing.T, r io.Reader, suffix string, timeout time.Duration) string {
	t.Helper()

	done := make(chan string, 1)
	go func() {
		var sb strings.Builder
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			sb.Write(buf[:n])
			if strings.HasSuffix(sb.String(), suffix) || err != nil {
				done <- sb.String()
				return
			}
		}
	}()

	select {
	case got := <-done:
		if !strings.HasSuffix(got, suffix) {
			t.Fatalf("output ended before %q, got %q", suffix, got)
		}
		return got
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for %q", suffix)
		return ""
	}
}
