package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"modeltime/core/ui"
)

// CLIFormatter renders aligned terminal tables
type CLIFormatter struct {
	noColor bool
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor}
}

func (f *CLIFormatter) Format() Format { return FormatCLI }

func (f *CLIFormatter) Render(out io.Writer, r *Report) error {
	w := ui.NewWriter(out, f.noColor)
	c := r.Config

	w.Header("Model Time " + string(r.Fingerprint))
	w.Println("Span: %d-%d, data grid: %d-%d every %d years",
		c.StartYear, c.EndYear, c.StartYear, c.DataEndYear, c.DataTimeStep)
	for _, msg := range r.Warnings {
		w.Warning("%s", msg)
	}

	w.Println("")
	w.SubHeader("Eras")
	eras := w.NewTable("Era", "From", "To", "Step", "Full", "Total", "Remainder")
	for _, e := range r.Eras {
		eras.AddRow(itoa(e.Index), itoa(e.From), itoa(e.To), itoa(e.Step),
			itoa(e.Full), itoa(e.WithRemainder), itoa(e.Remainder))
	}
	eras.Render()

	w.Println("")
	w.SubHeader(fmt.Sprintf("Periods (%d)", len(r.Periods)))
	periods := w.NewTable("Period", "Year", "Step", "Era", "Remainder")
	for _, p := range r.Periods {
		rem := ""
		if p.Remainder {
			rem = "yes"
		}
		periods.AddRow(itoa(p.Index), itoa(p.Year), itoa(p.Step), itoa(p.Era), rem)
	}
	periods.Render()

	w.Println("")
	w.SubHeader(fmt.Sprintf("Data periods (%d)", len(r.DataPeriods)))
	data := w.NewTable("Data", "Year", "Model", "Offset", "Ratio")
	for _, d := range r.DataPeriods {
		data.AddRow(itoa(d.Index), itoa(d.Year), itoa(d.ModelPeriod), itoa(d.Offset), d.Ratio.String())
	}
	data.Render()
	return nil
}

// JSONFormatter renders the report as JSON
type JSONFormatter struct {
	Indent string
}

func (f *JSONFormatter) Format() Format { return FormatJSON }

func (f *JSONFormatter) Render(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	return enc.Encode(r)
}

// MarkdownFormatter renders the report as markdown tables
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

func (f *MarkdownFormatter) Render(w io.Writer, r *Report) error {
	c := r.Config
	fmt.Fprintf(w, "## Model time %d-%d\n\n", c.StartYear, c.EndYear)
	for _, msg := range r.Warnings {
		fmt.Fprintf(w, "> **Warning:** %s\n\n", msg)
	}

	fmt.Fprintln(w, "| Period | Year | Step | Era | Remainder |")
	fmt.Fprintln(w, "|---:|---:|---:|---:|:---:|")
	for _, p := range r.Periods {
		rem := ""
		if p.Remainder {
			rem = "✓"
		}
		fmt.Fprintf(w, "| %d | %d | %d | %d | %s |\n", p.Index, p.Year, p.Step, p.Era, rem)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Data period | Year | Model period | Offset | Ratio |")
	fmt.Fprintln(w, "|---:|---:|---:|---:|---:|")
	for _, d := range r.DataPeriods {
		if _, err := fmt.Fprintf(w, "| %d | %d | %d | %d | %s |\n", d.Index, d.Year, d.ModelPeriod, d.Offset, d.Ratio); err != nil {
			return err
		}
	}
	return nil
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
