package validator

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		encoder := json.NewEncoder(r.out)
		encoder.SetIndent("", "  ")
		return errors.Wrap(encoder.Encode(result), "encoding JSON report")
	default:
		r.reportText(result)
		return nil
	}
}

func (r *Reporter) reportText(result *Result) {
	source := result.Source
	if source == "" {
		source = "input"
	}

	errs := result.Errors()
	warnings := result.Warnings()
	if len(errs) == 0 && len(warnings) == 0 {
		fmt.Fprintf(r.out, "%s %s\n", color.GreenString("✓"), source)
		return
	}

	fmt.Fprintf(r.out, "%s: %s, %s\n",
		source,
		color.RedString("%d error(s)", len(errs)),
		color.YellowString("%d warning(s)", len(warnings)),
	)
	for _, e := range errs {
		r.printIssue(e, color.FgRed)
	}
	for _, w := range warnings {
		r.printIssue(w, color.FgYellow)
	}
}

func (r *Reporter) printIssue(i Issue, c color.Attribute) {
	line := "  • "
	if loc := i.Location(); loc != "" {
		line += color.New(c).Sprint(loc) + ": "
	}
	line += i.Message
	if i.Value != nil {
		val := fmt.Sprintf("%v", i.Value)
		if len(val) > 50 {
			val = val[:47] + "..."
		}
		line += color.New(color.FgHiBlack).Sprintf(" [%s]", val)
	}
	fmt.Fprintln(r.out, line)
}
