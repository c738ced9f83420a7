// Package printer renders command output as tables, JSON or YAML and
// prints styled status messages.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputType selects how structured values are rendered.
type OutputType string

const (
	OutputTypeTable OutputType = "table"
	OutputTypeJSON  OutputType = "json"
	OutputTypeYAML  OutputType = "yaml"
)

// ParseOutputType validates an --output flag value.
func ParseOutputType(s string) (OutputType, error) {
	switch OutputType(s) {
	case OutputTypeTable, OutputTypeJSON, OutputTypeYAML:
		return OutputType(s), nil
	case "":
		return OutputTypeTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected table, json or yaml)", s)
	}
}

// Printer writes structured values in one output format.
type Printer struct {
	outputType OutputType
	quiet      bool
	out        io.Writer
}

// New returns a printer writing to stdout. quiet suppresses status
// messages but never the structured output itself.
func New(outputType OutputType, quiet bool) *Printer {
	return NewWithWriter(os.Stdout, outputType, quiet)
}

func NewWithWriter(w io.Writer, outputType OutputType, quiet bool) *Printer {
	return &Printer{outputType: outputType, quiet: quiet, out: w}
}

func (p *Printer) OutputType() OutputType { return p.outputType }

// Print renders v as JSON or YAML according to the output type. Table
// output is built by the caller with a TablePrinter.
func (p *Printer) Print(v any) error {
	switch p.outputType {
	case OutputTypeYAML:
		return p.PrintYAML(v)
	case OutputTypeJSON:
		return p.PrintJSON(v)
	default:
		return fmt.Errorf("output type %q needs a table printer", p.outputType)
	}
}

// PrintJSON writes v as indented JSON.
func (p *Printer) PrintJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintYAML writes v as YAML.
func (p *Printer) PrintYAML(v any) error {
	enc := yaml.NewEncoder(p.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Infof prints a status line unless the printer is quiet.
func (p *Printer) Infof(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.out, infoStyle.Render(fmt.Sprintf(format, args...)))
}
