package cli

import "strconv"

// Exit codes for the setedit CLI
const (
	// ExitSuccess indicates the last command completed without problems
	ExitSuccess = 0

	// ExitProblem indicates a recoverable command-level problem: invalid
	// input, a missing setting, an unknown command
	ExitProblem = 1

	// ExitEnvironment indicates an unrecoverable file-system or
	// configuration failure
	ExitEnvironment = 2
)

// ExitError carries a process exit status out of cobra's RunE.
// The message, if any, has already been printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit status " + strconv.Itoa(e.Code)
}
