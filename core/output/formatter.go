// Package output provides output formatting interfaces.
// This package produces human and machine-readable schedule reports.
package output

import (
	"fmt"
	"io"
	"sort"

	"modeltime/core/determinism"
	"modeltime/core/modeltime"
	"modeltime/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is the complete description of a finalized schedule
type Report struct {
	// Config is the input configuration
	Config modeltime.Config `json:"config"`

	// Eras holds the per-era period counts
	Eras []modeltime.EraSummary `json:"eras"`

	// Periods is the model schedule
	Periods []modeltime.Period `json:"periods"`

	// DataPeriods is the data-grid alignment
	DataPeriods []modeltime.DataPeriod `json:"data_periods"`

	// Fingerprint identifies the configuration; equal configs share it
	Fingerprint determinism.StableID `json:"fingerprint"`

	// Warnings lists eras that needed a remainder period
	Warnings []string `json:"warnings,omitempty"`
}

// NewReport builds a report from a finalized modeltime
func NewReport(mt *modeltime.Modeltime) *Report {
	c := mt.Config()
	r := &Report{
		Fingerprint: determinism.NewIDGenerator("modeltime").GenerateInts(
			c.StartYear, c.InterYear1, c.InterYear2, c.EndYear,
			c.TimeStep1, c.TimeStep2, c.TimeStep3, c.DataEndYear, c.DataTimeStep),
		Config:      c,
		Eras:        mt.Eras(),
		Periods:     mt.Periods(),
		DataPeriods: mt.DataPeriods(),
	}
	for _, e := range r.Eras {
		if e.Uneven() {
			r.Warnings = append(r.Warnings, fmt.Sprintf(
				"era %d (%d-%d) not divisible by time step %d, remainder period of %d years added",
				e.Index, e.From, e.To, e.Step, e.Remainder))
		}
	}
	return r
}

// Registry maps formats to formatters
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates a registry with the built-in formatters
func NewRegistry(noColor bool) *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	for _, f := range []Formatter{NewCLIFormatter(noColor), &JSONFormatter{Indent: "  "}, &MarkdownFormatter{}} {
		_ = r.Register(f)
	}
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	if _, exists := r.formatters[f.Format()]; exists {
		return errors.Newf(errors.TypeInput, "formatter already registered: %s", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns a formatter for a format type
func (r *Registry) Get(format Format) (Formatter, error) {
	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.NotFound("output format", string(format))
	}
	return f, nil
}

// Formats returns the registered formats in sorted order
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
