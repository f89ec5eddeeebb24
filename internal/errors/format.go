package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorLabel  = color.New(color.FgRed, color.Bold)
	errorMsg    = color.New(color.FgRed)
	fixLabel    = color.New(color.FgGreen, color.Bold)
	usageLabel  = color.New(color.FgCyan, color.Bold)
	usageText   = color.New(color.FgCyan)
	bullet      = color.New(color.FgGreen)
	categoryFmt = color.New(color.FgYellow)
)

// paint renders s with c when colors are wanted. Colors are forced on so
// the decision stays with the caller rather than the global NoColor flag.
func paint(c *color.Color, s string, useColors bool) string {
	if !useColors {
		return s
	}
	cc := *c
	cc.EnableColor()
	return cc.Sprint(s)
}

func formatError(err *CLIError, useColors bool) string {
	var sb strings.Builder

	sb.WriteString(paint(errorLabel, "Error", useColors))
	sb.WriteString(" [")
	sb.WriteString(paint(categoryFmt, err.Category.String(), useColors))
	sb.WriteString("]: ")
	sb.WriteString(paint(errorMsg, err.Message, useColors))
	sb.WriteString("\n")

	if err.Usage != "" {
		sb.WriteString("\n")
		sb.WriteString(paint(usageLabel, "Usage: ", useColors))
		sb.WriteString(paint(usageText, err.Usage, useColors))
		sb.WriteString("\n")
	}

	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		sb.WriteString(paint(fixLabel, "To fix this:", useColors))
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			sb.WriteString("  ")
			sb.WriteString(paint(bullet, "•", useColors))
			sb.WriteString(" ")
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError, useColors bool) {
	if err == nil {
		return
	}
	fmt.Fprint(w, formatError(err, useColors))
}
