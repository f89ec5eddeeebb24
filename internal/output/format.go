// Package output renders setedit messages for the terminal.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes user-facing messages to one destination, colored or not.
// The text of every message is the same either way so scripts can match it.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter returns a Printer writing to out.
func NewPrinter(out io.Writer, useColor bool) *Printer {
	return &Printer{out: out, color: useColor}
}

func (p *Printer) paint(s string, attrs ...color.Attribute) string {
	if !p.color {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// Setting prints one entry of a listing as "name: value".
func (p *Printer) Setting(name, value string) {
	fmt.Fprintf(p.out, "%s: %s\n", p.paint(name, color.FgCyan, color.Bold), value)
}

// Value prints a bare setting value.
func (p *Printer) Value(value string) {
	fmt.Fprintln(p.out, value)
}

// InvalidLine prints the diagnostic for a malformed line.
func (p *Printer) InvalidLine(number int) {
	fmt.Fprintln(p.out, p.paint(fmt.Sprintf("Invalid setting at line %d", number), color.FgYellow))
}

// Problem prints a recoverable command-level problem.
func (p *Printer) Problem(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(fmt.Sprintf(format, args...), color.FgRed))
}

// Success prints a confirmation.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.paint(fmt.Sprintf(format, args...), color.FgGreen))
}

// Println prints plain text.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Printf prints formatted plain text.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Hint prints dimmed help text.
func (p *Printer) Hint(text string) {
	fmt.Fprintln(p.out, p.paint(text, color.Faint))
}
