package modeltime

import (
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"modeltime/internal/errors"
)

// Config returns a copy of the configuration.
func (m *Modeltime) Config() Config { return m.cfg }

func (m *Modeltime) StartYear() int    { return m.cfg.StartYear }
func (m *Modeltime) InterYear1() int   { return m.cfg.InterYear1 }
func (m *Modeltime) InterYear2() int   { return m.cfg.InterYear2 }
func (m *Modeltime) EndYear() int      { return m.cfg.EndYear }
func (m *Modeltime) TimeStep1() int    { return m.cfg.TimeStep1 }
func (m *Modeltime) TimeStep2() int    { return m.cfg.TimeStep2 }
func (m *Modeltime) TimeStep3() int    { return m.cfg.TimeStep3 }
func (m *Modeltime) DataEndYear() int  { return m.cfg.DataEndYear }
func (m *Modeltime) DataTimeStep() int { return m.cfg.DataTimeStep }

func (m *Modeltime) set(dst *int, v int) error {
	if m.finalized {
		return ErrFinalized
	}
	*dst = v
	return nil
}

func (m *Modeltime) SetStartYear(v int) error    { return m.set(&m.cfg.StartYear, v) }
func (m *Modeltime) SetInterYear1(v int) error   { return m.set(&m.cfg.InterYear1, v) }
func (m *Modeltime) SetInterYear2(v int) error   { return m.set(&m.cfg.InterYear2, v) }
func (m *Modeltime) SetEndYear(v int) error      { return m.set(&m.cfg.EndYear, v) }
func (m *Modeltime) SetTimeStep1(v int) error    { return m.set(&m.cfg.TimeStep1, v) }
func (m *Modeltime) SetTimeStep2(v int) error    { return m.set(&m.cfg.TimeStep2, v) }
func (m *Modeltime) SetTimeStep3(v int) error    { return m.set(&m.cfg.TimeStep3, v) }
func (m *Modeltime) SetDataEndYear(v int) error  { return m.set(&m.cfg.DataEndYear, v) }
func (m *Modeltime) SetDataTimeStep(v int) error { return m.set(&m.cfg.DataTimeStep, v) }

// BasePeriod returns the period representing the start year.
func (m *Modeltime) BasePeriod() int {
	m.mustBeFinalized()
	return m.yearToModelPeriod[m.cfg.StartYear]
}

// YearToPeriod returns the period representing year. Years outside the
// modeled span are logged and reported with an error wrapping
// ErrYearNotModeled; the returned period is then meaningless.
func (m *Modeltime) YearToPeriod(year int) (int, error) {
	m.mustBeFinalized()
	p, ok := m.yearToModelPeriod[year]
	if !ok {
		m.logger.Error("invalid year passed to year-to-period lookup",
			zap.Int("year", year),
			zap.Int("start_year", m.cfg.StartYear),
			zap.Int("end_year", m.cfg.EndYear),
		)
		return 0, errors.NotFound("year", strconv.Itoa(year)).
			WithContext("start_year", m.cfg.StartYear).
			WithContext("end_year", m.cfg.EndYear)
	}
	return p, nil
}

// MaxPeriod returns the number of model periods.
func (m *Modeltime) MaxPeriod() int {
	m.mustBeFinalized()
	return len(m.periods)
}

// MaxDataPeriod returns the number of data-grid points.
func (m *Modeltime) MaxDataPeriod() int {
	m.mustBeFinalized()
	return m.maxDataPeriod
}

// PeriodToYear returns the calendar year representing period p.
func (m *Modeltime) PeriodToYear(p int) int {
	m.mustBeFinalized()
	return m.modelPeriodToYear[p]
}

// TimeStep returns the number of years period p advances over p-1.
// For the base period it is the first era's nominal step.
func (m *Modeltime) TimeStep(p int) int {
	m.mustBeFinalized()
	return m.periodToTimeStep[p]
}

// DataOffset returns the number of model periods per data step at data period i,
// or 0 when the two grids coincide.
func (m *Modeltime) DataOffset(i int) int {
	m.mustBeFinalized()
	return m.dataOffset[i]
}

// DataOffsetRatio is DataOffset without integer truncation.
func (m *Modeltime) DataOffsetRatio(i int) decimal.Decimal {
	m.mustBeFinalized()
	return m.dataRatio[i]
}

// DataPeriodToModelPeriod returns the model period aligned to data period i.
func (m *Modeltime) DataPeriodToModelPeriod(i int) int {
	m.mustBeFinalized()
	return m.dataPeriodToModelPeriod[i]
}

// Eras returns the per-era period counts.
func (m *Modeltime) Eras() []EraSummary {
	m.mustBeFinalized()
	return append([]EraSummary(nil), m.eras...)
}

// Periods returns a copy of the schedule.
func (m *Modeltime) Periods() []Period {
	m.mustBeFinalized()
	return append([]Period(nil), m.periods...)
}

// DataPeriods returns a copy of the data-grid alignment.
func (m *Modeltime) DataPeriods() []DataPeriod {
	m.mustBeFinalized()
	out := make([]DataPeriod, m.maxDataPeriod)
	for i := range out {
		out[i] = DataPeriod{
			Index:       i,
			Year:        m.cfg.StartYear + i*m.cfg.DataTimeStep,
			ModelPeriod: m.dataPeriodToModelPeriod[i],
			Offset:      m.dataOffset[i],
			Ratio:       m.dataRatio[i],
		}
	}
	return out
}

// Years returns every year covered by the schedule in ascending order.
func (m *Modeltime) Years() []int {
	m.mustBeFinalized()
	return append([]int(nil), m.years...)
}
