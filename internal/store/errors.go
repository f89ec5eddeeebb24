package store

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSetting is returned when a candidate line is not name=value.
	ErrInvalidSetting = errors.New("invalid setting")
	// ErrIsDirectory is returned when the settings path names a directory.
	ErrIsDirectory = errors.New("settings path is a directory")
	// ErrNotText is returned when the settings file is not valid UTF-8.
	ErrNotText = errors.New("settings file is not UTF-8 text")
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("settings store is closed")
)

// Op names the file action that was in progress when an error occurred.
type Op string

const (
	OpOpen    Op = "opening"
	OpCreate  Op = "creating"
	OpRead    Op = "reading"
	OpWrite   Op = "writing to"
	OpReplace Op = "replacing"
	OpDelete  Op = "deleting"
)

const (
	kindSettings  = "settings file"
	kindTemporary = "temporary settings file for"
)

// FileError records which action on which file failed.
// It is the error context threaded through every store operation.
type FileError struct {
	Op   Op
	Kind string
	Path string
	Err  error
}

// Action describes the failed action, e.g. "writing to settings file 'a.conf'".
func (e *FileError) Action() string {
	return fmt.Sprintf("%s %s '%s'", e.Op, e.Kind, e.Path)
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Action(), e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func settingsErr(op Op, path string, err error) error {
	return &FileError{Op: op, Kind: kindSettings, Path: path, Err: err}
}

func tempErr(op Op, path string, err error) error {
	return &FileError{Op: op, Kind: kindTemporary, Path: path, Err: err}
}
