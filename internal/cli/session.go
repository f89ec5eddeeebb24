package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"unicode"

	"github.com/ariel-frischer/setedit/internal/output"
	"github.com/ariel-frischer/setedit/internal/setting"
	"github.com/ariel-frischer/setedit/internal/store"
	"github.com/rs/zerolog"
)

const banner = "Type 'help' for a list of commands and their descriptions\n" +
	"Type 'help' followed by the name of a command to get its usage"

// Settings is the set of store operations the commands need.
type Settings interface {
	List(ctx context.Context) ([]store.Line, error)
	Get(ctx context.Context, name string) (setting.Setting, bool, error)
	Set(ctx context.Context, line string) (*store.SetResult, error)
	Add(ctx context.Context, line string) error
	Delete(ctx context.Context, name string) (*store.DeleteResult, error)
	Fix(ctx context.Context) (*store.FixResult, error)
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Prompt string
	Banner bool
	Logger zerolog.Logger
}

// Session runs commands against one settings file and tracks the status
// of the last command.
type Session struct {
	store  Settings
	out    *output.Printer
	prompt string
	banner bool
	logger zerolog.Logger
	status int
}

// NewSession returns a Session printing to out.
func NewSession(settings Settings, out *output.Printer, opts SessionOptions) *Session {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = "> "
	}
	return &Session{
		store:  settings,
		out:    out,
		prompt: prompt,
		banner: opts.Banner,
		logger: opts.Logger,
	}
}

// Status returns the exit status set by the last command.
func (s *Session) Status() int {
	return s.status
}

// Execute runs one command line. Command-level problems are printed and
// recorded in Status; the returned error is an environment failure or a
// cancellation, and ends the session.
func (s *Session) Execute(ctx context.Context, input string) error {
	err := s.execute(ctx, input)
	if errors.Is(err, errExit) {
		return nil
	}
	return err
}

func (s *Session) execute(ctx context.Context, input string) error {
	s.status = ExitSuccess

	name, arg := splitCommand(setting.TrimEOL(input))
	if name == "" {
		return nil
	}
	c, ok := lookupCommand(name)
	if !ok {
		s.unknownCommand(name)
		return nil
	}

	if (arg != "" && c.arity() == 0) || (arg == "" && c.arity() > 0 && !c.optional) {
		s.status = ExitProblem
		s.out.Problem("Incorrect number of arguments")
		s.printUsage(c)
		return nil
	}

	s.logger.Debug().Str("command", name).Str("arg", arg).Msg("running command")
	return c.run(ctx, s, arg)
}

// Run reads commands from in until end of input, the exit command, or
// cancellation of ctx. A cancelled session prints "exit".
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	if s.banner {
		s.out.Println()
		s.out.Hint(banner)
	}

	// The reader stops once Run returns, whatever ended the session.
	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines := make(chan readResult)
	go readLines(readCtx, in, lines)

	for {
		s.out.Printf("%s", s.prompt)

		var res readResult
		select {
		case <-ctx.Done():
			s.out.Println("exit")
			return nil
		case res = <-lines:
		}

		if res.line != "" {
			err := s.execute(ctx, res.line)
			switch {
			case errors.Is(err, errExit):
				return nil
			case errors.Is(err, context.Canceled):
				s.out.Println("exit")
				return nil
			case err != nil:
				return err
			}
		}

		if res.err != nil {
			if !errors.Is(res.err, io.EOF) {
				s.logger.Debug().Err(res.err).Msg("reading input failed")
			}
			return nil
		}
	}
}

type readResult struct {
	line string
	err  error
}

// readLines feeds lines from in to out until in fails or ctx ends. The
// final result carries the read error, usually io.EOF. A read that is
// already blocked returns only when in delivers data or fails.
func readLines(ctx context.Context, in io.Reader, out chan<- readResult) {
	r := bufio.NewReader(in)
	for {
		line, err := r.ReadString('\n')
		select {
		case out <- readResult{line: line, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

// splitCommand splits input into its first word and the remainder with
// leading whitespace removed. The remainder is otherwise kept verbatim so
// values may contain spaces.
func splitCommand(input string) (name, arg string) {
	input = strings.TrimLeftFunc(input, unicode.IsSpace)
	i := strings.IndexFunc(input, unicode.IsSpace)
	if i < 0 {
		return input, ""
	}
	return input[:i], strings.TrimLeftFunc(input[i:], unicode.IsSpace)
}

func (s *Session) unknownCommand(name string) {
	s.status = ExitProblem
	s.out.Problem("Command '%s' does not exist", name)
}

func (s *Session) missingSetting(name string) {
	s.status = ExitProblem
	s.out.Problem("Setting '%s' does not exist", name)
}
