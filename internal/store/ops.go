package store

import (
	"context"
	"fmt"

	"github.com/ariel-frischer/setedit/internal/setting"
)

// SetResult describes a completed Set.
type SetResult struct {
	Setting setting.Setting
	Outcome Outcome
	// Missing is true when no line carried the setting's name.
	Missing bool
}

// DeleteResult describes a completed Delete.
type DeleteResult struct {
	Name    string
	Outcome Outcome
	// Missing is true when no line carried the name.
	Missing bool
}

// FixResult describes a completed Fix.
type FixResult struct {
	Outcome Outcome
	// Clean is true when the file had no invalid lines and no duplicates.
	Clean bool
	// Removed lists every name that lost at least one duplicate, in the
	// order the duplicates were first found.
	Removed []string
	// Invalid lists the line numbers of invalid lines left after the fix.
	Invalid []int
}

// List returns every line of the file in order, valid or not.
func (s *Store) List(ctx context.Context) ([]Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var lines []Line
	err := s.scan(func(line Line) error {
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Get returns the first setting named name. The boolean is false when no
// line carries that name.
func (s *Store) Get(ctx context.Context, name string) (setting.Setting, bool, error) {
	if err := ctx.Err(); err != nil {
		return setting.Setting{}, false, err
	}
	var (
		found setting.Setting
		ok    bool
	)
	err := s.scan(func(line Line) error {
		if st, m := setting.Lookup(line.Raw, name); m == setting.Found {
			found, ok = st, true
			return errStopScan
		}
		return nil
	})
	if err != nil {
		return setting.Setting{}, false, err
	}
	return found, ok, nil
}

// Set replaces every line named like the candidate line with the candidate
// itself. An invalid candidate is rejected before any I/O.
func (s *Store) Set(ctx context.Context, line string) (*SetResult, error) {
	candidate, ok := setting.Parse(line)
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrInvalidSetting, line)
	}
	replacement := setting.TrimEOL(line) + "\n"

	res := &SetResult{Setting: candidate, Missing: true}
	p, err := s.rewrite(ctx, func(l Line) []string {
		if l.Valid && l.Setting.Name == candidate.Name {
			res.Missing = false
			return []string{replacement}
		}
		return []string{l.Raw}
	})
	if err != nil {
		return nil, err
	}

	res.Outcome, err = s.commit(p)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("name", candidate.Name).Bool("missing", res.Missing).
		Stringer("outcome", res.Outcome).Msg("set")
	return res, nil
}

// Delete drops every line named name.
func (s *Store) Delete(ctx context.Context, name string) (*DeleteResult, error) {
	res := &DeleteResult{Name: name, Missing: true}
	p, err := s.rewrite(ctx, func(l Line) []string {
		if l.Valid && l.Setting.Name == name {
			res.Missing = false
			return nil
		}
		return []string{l.Raw}
	})
	if err != nil {
		return nil, err
	}

	res.Outcome, err = s.commit(p)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("name", name).Bool("missing", res.Missing).
		Stringer("outcome", res.Outcome).Msg("delete")
	return res, nil
}

// Fix removes every duplicate of an earlier setting, keeping the first
// occurrence of each name. Invalid lines are kept where they are and
// reported by line number after the rewrite.
func (s *Store) Fix(ctx context.Context) (*FixResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &FixResult{}

	invalid := false
	seen := make(map[string]bool)
	duplicated := make(map[string]bool)
	err := s.scan(func(l Line) error {
		if l.Invalid() {
			invalid = true
			return nil
		}
		name := l.Setting.Name
		if !seen[name] {
			seen[name] = true
		} else if !duplicated[name] {
			duplicated[name] = true
			res.Removed = append(res.Removed, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !invalid && len(res.Removed) == 0 {
		res.Clean = true
		return res, nil
	}

	kept := make(map[string]bool)
	p, err := s.rewrite(ctx, func(l Line) []string {
		if !l.Valid {
			return []string{l.Raw}
		}
		if kept[l.Setting.Name] {
			return nil
		}
		kept[l.Setting.Name] = true
		return []string{l.Raw}
	})
	if err != nil {
		return nil, err
	}
	if res.Outcome, err = s.commit(p); err != nil {
		return nil, err
	}

	err = s.scan(func(l Line) error {
		if l.Invalid() {
			res.Invalid = append(res.Invalid, l.Number)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Strs("removed", res.Removed).Ints("invalid", res.Invalid).
		Stringer("outcome", res.Outcome).Msg("fix")
	return res, nil
}

// Add appends line to the end of the file without checking for an existing
// setting of the same name. When the file is not empty and does not end in
// a newline, one is written first so the new entry starts on its own line.
func (s *Store) Add(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := setting.Parse(line); !ok {
		return fmt.Errorf("%w '%s'", ErrInvalidSetting, line)
	}
	if s.file == nil {
		return ErrClosed
	}

	info, err := s.file.Stat()
	if err != nil {
		return settingsErr(OpRead, s.path, err)
	}
	size := info.Size()

	text := line
	if size > 0 {
		last := make([]byte, 1)
		if _, err := s.file.ReadAt(last, size-1); err != nil {
			return settingsErr(OpRead, s.path, err)
		}
		if last[0] != '\n' {
			text = "\n" + text
		}
	}

	if _, err := s.file.WriteAt([]byte(text), size); err != nil {
		return settingsErr(OpWrite, s.path, err)
	}
	if err := s.file.Sync(); err != nil {
		return settingsErr(OpWrite, s.path, err)
	}
	s.logger.Debug().Str("path", s.path).Int64("offset", size).Msg("setting appended")
	return nil
}
