package store

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/ariel-frischer/setedit/internal/setting"
)

// Line is one scanned line of a settings file.
type Line struct {
	// Number is the 1-indexed line number.
	Number int
	// Raw is the line exactly as read, including its terminator if any.
	Raw string
	// Setting is the parsed setting; only meaningful when Valid is true.
	Setting setting.Setting
	// Valid reports whether the line parsed as name=value.
	Valid bool
}

// Invalid reports whether the line is not a setting. Empty and
// whitespace-only lines are invalid too.
func (l Line) Invalid() bool {
	return !l.Valid
}

// errStopScan ends a scan early without reporting an error.
var errStopScan = errors.New("stop scan")

// Scan reads r line by line and calls fn for each line in order.
// A final line without terminator is still reported. Scanning stops at the
// first error returned by fn, or with ErrNotText when a line is not UTF-8.
func Scan(r io.Reader, fn func(Line) error) error {
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if raw != "" {
			if !utf8.ValidString(raw) {
				return ErrNotText
			}
			line := Line{Number: n, Raw: raw}
			line.Setting, line.Valid = setting.Parse(raw)
			if ferr := fn(line); ferr != nil {
				if errors.Is(ferr, errStopScan) {
					return nil
				}
				return ferr
			}
		}
		if err != nil {
			return nil
		}
	}
}
