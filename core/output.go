package core

import (
	"encoding/json"
	"fmt"
	"os"
)

// Printer handles all display output for the CLI.
type Printer struct {
	JSON    bool
	Verbose bool
	Writer  *os.File
}

// NewPrinter creates a default Printer writing to stdout.
func NewPrinter(jsonMode, verbose bool) *Printer {
	return &Printer{JSON: jsonMode, Verbose: verbose, Writer: os.Stdout}
}

// PrintReport renders a TagReport to the configured output.
func (p *Printer) PrintReport(r *TagReport) {
	if p.JSON {
		p.printJSON(r)
		return
	}
	p.printText(r)
}

func (p *Printer) printText(r *TagReport) {
	fmt.Fprintf(p.Writer, "File  : %s\n", r.FilePath)
	fmt.Fprintf(p.Writer, "Format: %s\n", r.Format)
	for _, w := range r.Warnings {
		fmt.Fprintf(p.Writer, "Note  : %s\n", w)
	}
	if len(r.Fields) == 0 {
		fmt.Fprintln(p.Writer, "(no metadata found)")
		return
	}
	fmt.Fprintln(p.Writer)

	// Group by category
	groups := make(map[string][]TagField)
	order := []string{}
	seen := map[string]bool{}
	for _, f := range r.Fields {
		if !seen[f.Category] {
			seen[f.Category] = true
			order = append(order, f.Category)
		}
		groups[f.Category] = append(groups[f.Category], f)
	}

	for _, cat := range order {
		fmt.Fprintf(p.Writer, "── %s ──\n", cat)
		for _, f := range groups[cat] {
			fmt.Fprintf(p.Writer, "  %-30s %s\n", f.Key+":", f.Value)
		}
		fmt.Fprintln(p.Writer)
	}
}

func (p *Printer) printJSON(r *TagReport) {
	type jsonField struct {
		Key      string `json:"key"`
		Value    string `json:"value"`
		Category string `json:"category"`
	}
	type jsonOutput struct {
		FilePath string      `json:"file"`
		Format   string      `json:"format"`
		Warnings []string    `json:"warnings,omitempty"`
		Fields   []jsonField `json:"fields"`
	}

	out := jsonOutput{
		FilePath: r.FilePath,
		Format:   r.Format,
		Warnings: r.Warnings,
	}
	for _, f := range r.Fields {
		out.Fields = append(out.Fields, jsonField{
			Key:      f.Key,
			Value:    f.Value,
			Category: f.Category,
		})
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Fprintln(p.Writer, string(b))
}

// PrintSuccess prints a success message.
func (p *Printer) PrintSuccess(msg string) {
	fmt.Fprintln(p.Writer, "✓ "+msg)
}

// PrintInfo prints an info line (suppressed in JSON mode).
func (p *Printer) PrintInfo(msg string) {
	if !p.JSON {
		fmt.Fprintln(p.Writer, msg)
	}
}

// PrintDebug prints a line only when verbose output is enabled.
func (p *Printer) PrintDebug(msg string) {
	if p.Verbose && !p.JSON {
		fmt.Fprintln(p.Writer, "  "+msg)
	}
}

// PrintError prints an error to stderr.
func PrintError(msg string) {
	fmt.Fprintln(os.Stderr, "✗ Error: "+msg)
}
