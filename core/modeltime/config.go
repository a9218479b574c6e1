package modeltime

import (
	"fmt"

	"go.uber.org/multierr"

	"modeltime/internal/errors"
)

// Config holds the scalar inputs of the time discretization.
// It is populated once by a loader before Finalize runs.
type Config struct {
	// StartYear is the calendar year of the base period
	StartYear int `json:"start_year"`

	// InterYear1 closes the first era
	InterYear1 int `json:"inter_year_1"`

	// InterYear2 closes the second era
	InterYear2 int `json:"inter_year_2"`

	// EndYear closes the third era and is the year of the last period
	EndYear int `json:"end_year"`

	// TimeStep1 is the nominal step within the first era
	TimeStep1 int `json:"time_step_1"`

	// TimeStep2 is the nominal step within the second era
	TimeStep2 int `json:"time_step_2"`

	// TimeStep3 is the nominal step within the third era
	TimeStep3 int `json:"time_step_3"`

	// DataEndYear is the last year of the data grid
	DataEndYear int `json:"data_end_year"`

	// DataTimeStep is the spacing of the data grid
	DataTimeStep int `json:"data_time_step"`
}

// Validate checks the ordering and positivity constraints of the
// configuration and reports every violation found.
//
// Boundaries may coincide (an empty era contributes no periods) but the
// modeled span must be non-empty, and the data grid must lie inside it.
func (c Config) Validate() error {
	var errs error

	if c.StartYear >= c.EndYear {
		errs = multierr.Append(errs, fmt.Errorf("start year %d must be before end year %d", c.StartYear, c.EndYear))
	}
	if c.InterYear1 < c.StartYear {
		errs = multierr.Append(errs, fmt.Errorf("intermediate year 1 (%d) precedes start year %d", c.InterYear1, c.StartYear))
	}
	if c.InterYear2 < c.InterYear1 {
		errs = multierr.Append(errs, fmt.Errorf("intermediate year 2 (%d) precedes intermediate year 1 (%d)", c.InterYear2, c.InterYear1))
	}
	if c.EndYear < c.InterYear2 {
		errs = multierr.Append(errs, fmt.Errorf("end year %d precedes intermediate year 2 (%d)", c.EndYear, c.InterYear2))
	}

	for i, step := range []int{c.TimeStep1, c.TimeStep2, c.TimeStep3} {
		if step <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("time step %d must be positive, got %d", i+1, step))
		}
	}

	if c.DataTimeStep <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("data time step must be positive, got %d", c.DataTimeStep))
	}
	if c.DataEndYear < c.StartYear || c.DataEndYear > c.EndYear {
		errs = multierr.Append(errs, fmt.Errorf("data end year %d outside modeled span [%d, %d]", c.DataEndYear, c.StartYear, c.EndYear))
	}

	if errs == nil {
		return nil
	}
	return errors.Config("invalid modeltime configuration", errs).
		WithContext("violations", len(multierr.Errors(errs)))
}

// eras returns the three eras in schedule order.
func (c Config) eras() []Era {
	return []Era{
		{Index: 1, From: c.StartYear, To: c.InterYear1, Step: c.TimeStep1},
		{Index: 2, From: c.InterYear1, To: c.InterYear2, Step: c.TimeStep2},
		{Index: 3, From: c.InterYear2, To: c.EndYear, Step: c.TimeStep3},
	}
}
