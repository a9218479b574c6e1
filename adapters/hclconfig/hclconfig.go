// Package hclconfig decodes modeltime configuration from HCL.
//
//	modeltime {
//	  start_year     = 1990
//	  inter_year_1   = 2005
//	  inter_year_2   = 2035
//	  end_year       = 2095
//	  time_step_1    = 5
//	  time_step_2    = 5
//	  time_step_3    = 10
//	  data_end_year  = 2005
//	  data_time_step = 5
//	}
package hclconfig

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"modeltime/core/modeltime"
	"modeltime/internal/errors"
)

type document struct {
	Modeltime *block   `hcl:"modeltime,block"`
	Remain    hcl.Body `hcl:",remain"`
}

type block struct {
	StartYear    int `hcl:"start_year"`
	InterYear1   int `hcl:"inter_year_1"`
	InterYear2   int `hcl:"inter_year_2"`
	EndYear      int `hcl:"end_year"`
	TimeStep1    int `hcl:"time_step_1"`
	TimeStep2    int `hcl:"time_step_2"`
	TimeStep3    int `hcl:"time_step_3"`
	DataEndYear  int `hcl:"data_end_year"`
	DataTimeStep int `hcl:"data_time_step"`
}

// Loader parses HCL modeltime documents
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new loader
func NewLoader() *Loader {
	return &Loader{
		parser: hclparse.NewParser(),
	}
}

// LoadFile reads and decodes the file at path
func (l *Loader) LoadFile(path string) (modeltime.Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return modeltime.Config{}, errors.Wrapf(errors.TypeInput, err, "read %s", path)
	}
	return l.Parse(src, path)
}

// Parse decodes the modeltime block of src. filename is used in diagnostics.
func (l *Loader) Parse(src []byte, filename string) (modeltime.Config, error) {
	f, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return modeltime.Config{}, diagError("parse", filename, diags)
	}

	var doc document
	if diags := gohcl.DecodeBody(f.Body, nil, &doc); diags.HasErrors() {
		return modeltime.Config{}, diagError("decode", filename, diags)
	}
	if doc.Modeltime == nil {
		return modeltime.Config{}, errors.NotFound("block", "modeltime").WithContext("file", filename)
	}

	b := doc.Modeltime
	return modeltime.Config{
		StartYear:    b.StartYear,
		InterYear1:   b.InterYear1,
		InterYear2:   b.InterYear2,
		EndYear:      b.EndYear,
		TimeStep1:    b.TimeStep1,
		TimeStep2:    b.TimeStep2,
		TimeStep3:    b.TimeStep3,
		DataEndYear:  b.DataEndYear,
		DataTimeStep: b.DataTimeStep,
	}, nil
}

// diagError converts the first error diagnostic into a parsing error.
func diagError(stage, filename string, diags hcl.Diagnostics) *errors.Error {
	e := errors.Parsing(stage+" "+filename, diags).WithContext("file", filename)
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		if diag.Subject != nil {
			e.WithContext("line", diag.Subject.Start.Line)
		}
		e.WithContext("summary", diag.Summary)
		break
	}
	return e
}
