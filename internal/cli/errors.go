package cli

import (
	"errors"
	"fmt"
	"io/fs"

	clierrors "github.com/ariel-frischer/setedit/internal/errors"
	"github.com/ariel-frischer/setedit/internal/store"
)

// environmentError turns a store failure into the message printed before
// exiting with ExitEnvironment. path is used when err carries no file
// context of its own.
func environmentError(err error, path string) *clierrors.CLIError {
	action := fmt.Sprintf("accessing settings file '%s'", path)
	var fileErr *store.FileError
	if errors.As(err, &fileErr) {
		action = fileErr.Action()
		path = fileErr.Path
	}

	switch {
	case errors.Is(err, store.ErrIsDirectory):
		return clierrors.IsDirectory(path, err)
	case errors.Is(err, store.ErrNotText):
		return clierrors.NotText(path, err)
	case errors.Is(err, fs.ErrPermission):
		return clierrors.PermissionDenied(action, path, err)
	default:
		return clierrors.FileOperationFailed(action, err)
	}
}

// exitCode maps an error category to the process exit status.
func exitCode(err *clierrors.CLIError) int {
	if err.Category == clierrors.Validation {
		return ExitProblem
	}
	return ExitEnvironment
}
