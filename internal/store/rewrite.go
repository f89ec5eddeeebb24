package store

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Transform maps one scanned line to the lines that replace it.
// Returning nil drops the line; returning []string{line.Raw} keeps it.
// Output lines are written verbatim, so they must carry their own
// terminators.
type Transform func(Line) []string

// Outcome is the result of a mutation that goes through a rewrite.
type Outcome int

const (
	// NoOp means the settings file was left untouched.
	NoOp Outcome = iota
	// Committed means a replacement file was renamed over the settings file.
	Committed
)

// String returns a readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case NoOp:
		return "no-op"
	case Committed:
		return "committed"
	default:
		return "unknown"
	}
}

// pending is a fully written replacement that has not yet been renamed
// over the settings file.
type pending struct {
	tmp     *os.File
	changed bool
}

// createTemp creates the replacement file next to the settings file with
// the settings file's permissions.
func (s *Store) createTemp() (*os.File, error) {
	dir, name := filepath.Split(s.path)
	f, err := os.CreateTemp(filepath.Clean(dir), "."+name+".tmp-*")
	if err != nil {
		return nil, tempErr(OpCreate, s.path, err)
	}
	if err := f.Chmod(s.mode()); err != nil {
		s.discard(f)
		return nil, tempErr(OpCreate, s.path, err)
	}
	return f, nil
}

// discard closes and removes a temporary file. A removal failure leaves a
// stray file behind and is only logged.
func (s *Store) discard(f *os.File) {
	_ = f.Close()
	if err := os.Remove(f.Name()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn().Err(tempErr(OpDelete, s.path, err)).Str("temp", f.Name()).
			Msg("temporary settings file left behind")
	}
}

// rewrite streams every line of the settings file through transform into a
// temporary file in the same directory. On any failure, including
// cancellation of ctx, the temporary file is removed and the settings file
// is untouched.
func (s *Store) rewrite(ctx context.Context, transform Transform) (*pending, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.file == nil {
		return nil, ErrClosed
	}

	tmp, err := s.createTemp()
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("path", s.path).Str("temp", tmp.Name()).Msg("rewrite started")

	p := &pending{tmp: tmp}
	w := bufio.NewWriter(tmp)
	err = s.scan(func(line Line) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		out := transform(line)
		if len(out) != 1 || out[0] != line.Raw {
			p.changed = true
		}
		for _, text := range out {
			if _, err := w.WriteString(text); err != nil {
				return tempErr(OpWrite, s.path, err)
			}
		}
		return nil
	})
	if err == nil {
		if ferr := w.Flush(); ferr != nil {
			err = tempErr(OpWrite, s.path, ferr)
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.discard(tmp)
		s.logger.Debug().Err(err).Str("path", s.path).Msg("rewrite abandoned")
		return nil, err
	}
	return p, nil
}

// commit renames a pending replacement over the settings file, or discards
// it when it would not change anything and unchanged rewrites are off.
// The replacement is synced to disk before the rename. The held handle is
// released before the rename and reopened afterwards, so it always refers
// to whatever file is at the settings path.
func (s *Store) commit(p *pending) (Outcome, error) {
	if !p.changed && !s.rewriteUnchanged {
		s.discard(p.tmp)
		s.logger.Debug().Str("path", s.path).Msg("rewrite discarded, nothing changed")
		return NoOp, nil
	}

	if err := p.tmp.Sync(); err != nil {
		s.discard(p.tmp)
		return NoOp, tempErr(OpWrite, s.path, err)
	}
	if err := p.tmp.Close(); err != nil {
		s.discard(p.tmp)
		return NoOp, tempErr(OpWrite, s.path, err)
	}

	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
	if err := os.Rename(p.tmp.Name(), s.path); err != nil {
		s.discard(p.tmp)
		if rerr := s.reopen(); rerr != nil {
			s.logger.Debug().Err(rerr).Str("path", s.path).Msg("reopen after failed replace")
		}
		return NoOp, settingsErr(OpReplace, s.path, err)
	}
	if err := s.reopen(); err != nil {
		return Committed, err
	}

	s.logger.Debug().Str("path", s.path).Bool("changed", p.changed).Msg("rewrite committed")
	return Committed, nil
}
