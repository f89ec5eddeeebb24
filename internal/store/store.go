// Package store reads and edits a flat name=value settings file.
//
// The store holds the settings file open for its whole lifetime. Read
// operations rescan the held handle from the start. Mutations that change
// existing lines (Set, Delete, Fix) build a complete replacement in a
// temporary file next to the target and rename it over the target, so the
// settings file is never observed half-written. Add only appends and
// writes to the held handle directly.
package store

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
)

const defaultFileMode os.FileMode = 0o644

// Store is an open settings file.
type Store struct {
	path             string
	file             *os.File
	created          bool
	rewriteUnchanged bool
	logger           zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithRewriteUnchanged makes rewrites that would not change the file commit
// anyway instead of discarding their temporary file.
func WithRewriteUnchanged(rewrite bool) Option {
	return func(s *Store) {
		s.rewriteUnchanged = rewrite
	}
}

// Open opens the settings file at path for reading and writing.
// A missing file is created empty; Created reports when that happened.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	f, err := openSettings(path, false)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug().Str("path", path).Msg("settings file not found, creating it")
		f, err = openSettings(path, true)
		s.created = err == nil
	}
	if err != nil {
		return nil, err
	}

	s.file = f
	s.logger.Debug().Str("path", path).Bool("created", s.created).Msg("settings file opened")
	return s, nil
}

func openSettings(path string, create bool) (*os.File, error) {
	op, flag := OpOpen, os.O_RDWR
	if create {
		op, flag = OpCreate, os.O_RDWR|os.O_CREATE
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, settingsErr(op, path, ErrIsDirectory)
	}
	f, err := os.OpenFile(path, flag, defaultFileMode)
	if err != nil {
		return nil, settingsErr(op, path, err)
	}
	return f, nil
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// Created reports whether Open had to create the settings file.
func (s *Store) Created() bool {
	return s.created
}

// Close releases the held settings file.
func (s *Store) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return settingsErr(OpWrite, s.path, err)
	}
	return nil
}

// scan rewinds the held file and scans it from the first line.
// Errors returned by fn are passed through untouched; read failures are
// reported as a FileError.
func (s *Store) scan(fn func(Line) error) error {
	if s.file == nil {
		return ErrClosed
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return settingsErr(OpRead, s.path, err)
	}

	var fnErr error
	err := Scan(s.file, func(line Line) error {
		fnErr = fn(line)
		return fnErr
	})
	if err == nil || (fnErr != nil && errors.Is(err, fnErr)) {
		return err
	}
	return settingsErr(OpRead, s.path, err)
}

// reopen replaces the held handle with a fresh one for the settings path.
func (s *Store) reopen() error {
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
	f, err := openSettings(s.path, false)
	if err != nil {
		return err
	}
	s.file = f
	return nil
}

func (s *Store) mode() os.FileMode {
	if s.file == nil {
		return defaultFileMode
	}
	info, err := s.file.Stat()
	if err != nil {
		return defaultFileMode
	}
	return info.Mode().Perm()
}
