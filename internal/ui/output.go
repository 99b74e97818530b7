package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	Bold   = color.New(color.Bold).SprintFunc()
	Dim    = color.New(color.Faint).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
)

// Printer writes styled messages to Out and reads answers from In
type Printer struct {
	Out io.Writer
	In  io.Reader
}

// New creates a printer on the given streams
func New(out io.Writer, in io.Reader) *Printer {
	return &Printer{Out: out, In: in}
}

// Info prints an informational message with a cyan arrow.
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "  %s %s\n", Cyan("→"), fmt.Sprintf(format, args...))
}

// Success prints a success message with a green checkmark.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "  %s %s\n", Green("✔"), fmt.Sprintf(format, args...))
}

// Fail prints an error message with a red X.
func (p *Printer) Fail(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "  %s %s\n", Red("✘"), fmt.Sprintf(format, args...))
}

// Warn prints a warning message with a yellow circle.
func (p *Printer) Warn(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "  %s %s\n", Yellow("○"), fmt.Sprintf(format, args...))
}

// DimMsg prints a dimmed, indented message.
func (p *Printer) DimMsg(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "    %s\n", Dim(fmt.Sprintf(format, args...)))
}

// Title prints a bold heading.
func (p *Printer) Title(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "%s\n", Bold(fmt.Sprintf(format, args...)))
}

// BlankLine prints an empty line.
func (p *Printer) BlankLine() {
	fmt.Fprintln(p.Out)
}
