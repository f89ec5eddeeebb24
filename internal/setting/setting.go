// Package setting parses single lines of a settings file into name/value pairs.
//
// A line holds a setting when it starts with one or more identifier
// characters (A-Z, a-z, 0-9 and _) immediately followed by '='. Everything
// after the first '=' is the value, which may be empty.
package setting

import (
	"regexp"
	"strings"
)

// NameSyntax describes the characters accepted in a setting name.
const NameSyntax = "'name' can be characters a-z, A-Z, 0-9, and _"

var linePattern = regexp.MustCompile(`^([A-Za-z0-9_]+)=(.*)$`)

// Setting is a parsed name/value pair.
type Setting struct {
	Name  string
	Value string
}

// String returns the setting in its file form, name=value.
func (s Setting) String() string {
	return s.Name + "=" + s.Value
}

// Match reports how a line relates to a requested setting name.
type Match int

const (
	// Invalid means the line is not a setting at all.
	Invalid Match = iota
	// Other means the line is a setting with a different name.
	Other
	// Found means the line is a setting with the requested name.
	Found
)

// String returns a readable name for the match kind.
func (m Match) String() string {
	switch m {
	case Invalid:
		return "invalid"
	case Other:
		return "other"
	case Found:
		return "found"
	default:
		return "unknown"
	}
}

// Parse extracts a setting from line. The line terminator, if any, is
// ignored. The boolean is false when the line is not a setting.
func Parse(line string) (Setting, bool) {
	m := linePattern.FindStringSubmatch(TrimEOL(line))
	if m == nil {
		return Setting{}, false
	}
	return Setting{Name: m[1], Value: m[2]}, true
}

// Lookup parses line and compares its name with name.
// The returned Setting is only meaningful when the match is Found or Other.
func Lookup(line, name string) (Setting, Match) {
	s, ok := Parse(line)
	if !ok {
		return Setting{}, Invalid
	}
	if s.Name != name {
		return s, Other
	}
	return s, Found
}

// TrimEOL removes a trailing "\n" or "\r\n" from line.
func TrimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
