package errors

import "fmt"

// Common error messages for the setedit CLI.
// The first line of each message matches what users of the interactive
// editor see on stdout; remediation is printed separately.

// PermissionDenied creates an error for a permission failure while action
// was in progress, e.g. "writing to settings file 'app.conf'".
func PermissionDenied(action, path string, cause error) *CLIError {
	return &CLIError{
		Category: Environment,
		Message:  fmt.Sprintf("Permission error when %s", action),
		Remediation: []string{
			"Check file permissions: ls -la " + path,
			"Ensure the containing directory is writable, rewrites create a temporary file next to it",
		},
		Err: cause,
	}
}

// IsDirectory creates an error for a settings path that names a directory.
func IsDirectory(path string, cause error) *CLIError {
	return &CLIError{
		Category: Environment,
		Message:  "Cannot open a directory",
		Remediation: []string{
			fmt.Sprintf("'%s' is a directory, pass the path of a settings file instead", path),
		},
		Err: cause,
	}
}

// NotText creates an error for a settings file that is not UTF-8 text.
func NotText(path string, cause error) *CLIError {
	return &CLIError{
		Category: Environment,
		Message:  "Settings file must be a text file",
		Remediation: []string{
			fmt.Sprintf("Check the encoding of '%s': file %s", path, path),
			"Convert it to UTF-8, e.g. with iconv",
		},
		Err: cause,
	}
}

// FileOperationFailed creates an error for any other I/O failure while
// action was in progress.
func FileOperationFailed(action string, cause error) *CLIError {
	return &CLIError{
		Category: Environment,
		Message:  fmt.Sprintf("Error when %s", action),
		Remediation: []string{
			fmt.Sprintf("Underlying error: %v", cause),
		},
		Err: cause,
	}
}

// SettingsFileRequired creates an error for a missing settings file argument.
func SettingsFileRequired(usage string) *CLIError {
	return NewValidationErrorWithUsage(
		"Settings file required",
		usage,
	)
}

// ConfigParseError creates an error for an unreadable setedit config file.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to load config file: %s", path),
		"Check the file for YAML or JSON syntax errors",
		"Move the file aside to fall back to built-in defaults",
	)
}
