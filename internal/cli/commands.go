package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/ariel-frischer/setedit/internal/logging"
	"github.com/ariel-frischer/setedit/internal/setting"
	"github.com/ariel-frischer/setedit/internal/store"
)

// errExit stops the interactive loop.
var errExit = errors.New("exit requested")

// command is one entry of the interactive command table.
type command struct {
	name     string
	args     string
	desc     string
	argsDesc string
	// optional is true when the single argument may be omitted.
	optional bool
	run      func(ctx context.Context, s *Session, arg string) error
}

// arity is the number of words in the argument synopsis.
func (c *command) arity() int {
	return len(strings.Fields(c.args))
}

// commands is kept in the order help lists it.
var commands []*command

func init() {
	commands = []*command{
		{
			name:     "help",
			args:     "[command]",
			desc:     "Displays help",
			argsDesc: "command: The command to display help for",
			optional: true,
			run:      runHelp,
		},
		{name: "list", desc: "Lists all settings", run: runList},
		{name: "fix", desc: "Finds invalid settings and deletes duplicated settings", run: runFix},
		{
			name:     "get",
			args:     "name",
			desc:     "Gets the value of a setting",
			argsDesc: "name: The name of the setting",
			run:      runGet,
		},
		{
			name:     "set",
			args:     "line",
			desc:     "Sets the value of a setting",
			argsDesc: "line: The setting in the format 'name=new_value'",
			run:      runSet,
		},
		{
			name:     "add",
			args:     "line",
			desc:     "Adds a setting",
			argsDesc: "line: The setting in the format 'name=value'",
			run:      runAdd,
		},
		{
			name:     "delete",
			args:     "name",
			desc:     "Deletes a setting",
			argsDesc: "name: The name of the setting",
			run:      runDelete,
		},
		{name: "exit", desc: "Exits this script", run: runExit},
	}
}

func lookupCommand(name string) (*command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// printUsage prints "Usage: name args" followed by one indented line per
// argument description.
func (s *Session) printUsage(c *command) {
	if c.args == "" {
		s.out.Printf("Usage: %s\n", c.name)
		return
	}
	s.out.Printf("Usage: %s %s\n", c.name, c.args)
	for _, line := range strings.Split(c.argsDesc, "\n") {
		s.out.Printf("  %s\n", line)
	}
}

func runHelp(_ context.Context, s *Session, arg string) error {
	if arg == "" {
		for _, c := range commands {
			s.out.Printf("%s: %s\n", c.name, c.desc)
		}
		return nil
	}
	name := strings.TrimSpace(arg)
	c, ok := lookupCommand(name)
	if !ok {
		s.unknownCommand(name)
		return nil
	}
	s.printUsage(c)
	return nil
}

func runList(ctx context.Context, s *Session, _ string) error {
	lines, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if !line.Valid {
			s.status = ExitProblem
			s.out.InvalidLine(line.Number)
			continue
		}
		s.out.Setting(line.Setting.Name, line.Setting.Value)
	}
	return nil
}

func runFix(ctx context.Context, s *Session, _ string) error {
	defer logging.LogOperationStart(s.logger, "fix")()

	res, err := s.store.Fix(ctx)
	if err != nil {
		return err
	}
	if res.Clean {
		s.out.Success("No problem found")
		return nil
	}

	s.status = ExitProblem
	for _, number := range res.Invalid {
		s.out.InvalidLine(number)
	}
	for _, name := range res.Removed {
		s.out.Success("Deleted duplicated setting %s", name)
	}
	return nil
}

func runGet(ctx context.Context, s *Session, name string) error {
	st, ok, err := s.store.Get(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		s.missingSetting(name)
		return nil
	}
	s.out.Value(st.Value)
	return nil
}

func runSet(ctx context.Context, s *Session, line string) error {
	defer logging.LogOperationStart(s.logger, "set")()

	res, err := s.store.Set(ctx, line)
	if errors.Is(err, store.ErrInvalidSetting) {
		s.status = ExitProblem
		s.out.Problem("Invalid setting '%s'", line)
		return nil
	}
	if err != nil {
		return err
	}
	if res.Missing {
		s.missingSetting(res.Setting.Name)
	}
	return nil
}

func runAdd(ctx context.Context, s *Session, line string) error {
	defer logging.LogOperationStart(s.logger, "add")()

	err := s.store.Add(ctx, line)
	if errors.Is(err, store.ErrInvalidSetting) {
		s.status = ExitProblem
		s.out.Problem(setting.NameSyntax)
		s.out.Println()
		c, _ := lookupCommand("add")
		s.printUsage(c)
		return nil
	}
	return err
}

func runDelete(ctx context.Context, s *Session, name string) error {
	defer logging.LogOperationStart(s.logger, "delete")()

	res, err := s.store.Delete(ctx, name)
	if err != nil {
		return err
	}
	if res.Missing {
		s.missingSetting(name)
	}
	return nil
}

func runExit(context.Context, *Session, string) error {
	return errExit
}
