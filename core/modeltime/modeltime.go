// Package modeltime discretizes the simulated horizon into periods.
//
// A Modeltime is configured with a start year, two intermediate years, an
// end year and one step length per era. Finalize turns that into the period
// schedule, the reverse year lookup and the alignment of the data grid onto
// model periods. After Finalize the value is read-only and may be shared
// between goroutines without locking.
package modeltime

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"modeltime/internal/errors"
)

var (
	// ErrYearNotModeled is returned by YearToPeriod for years outside the schedule
	ErrYearNotModeled = errors.New(errors.TypeNotFound, "year not modeled")

	// ErrFinalized is returned by setters once the schedule has been built
	ErrFinalized = errors.State("modeltime already finalized")
)

// Period is one entry of the model schedule.
type Period struct {
	// Index is the period number, 0 for the base period
	Index int `json:"index"`

	// Year is the calendar year representing the period
	Year int `json:"year"`

	// Step is the number of years the period advances over the previous one
	Step int `json:"step"`

	// Era is the era (1-3) the period belongs to
	Era int `json:"era"`

	// Remainder marks the short period absorbing an uneven era
	Remainder bool `json:"remainder"`
}

// DataPeriod is one point of the data grid aligned to a model period.
type DataPeriod struct {
	Index       int             `json:"index"`
	Year        int             `json:"year"`
	ModelPeriod int             `json:"model_period"`
	Offset      int             `json:"offset"`
	Ratio       decimal.Decimal `json:"ratio"`
}

// Option configures a Modeltime
type Option func(*Modeltime)

// WithLogger sets the logger that receives warnings and lookup errors.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Modeltime) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Modeltime is the temporal discretizer.
type Modeltime struct {
	cfg       Config
	logger    *zap.Logger
	finalized bool

	eras                    []EraSummary
	periods                 []Period
	periodToTimeStep        []int
	modelPeriodToYear       []int
	yearToModelPeriod       map[int]int
	years                   []int
	maxDataPeriod           int
	dataOffset              []int
	dataRatio               []decimal.Decimal
	dataPeriodToModelPeriod []int
}

// New creates an unfinalized Modeltime for cfg.
func New(cfg Config, opts ...Option) *Modeltime {
	m := &Modeltime{
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewFinalized creates a Modeltime and finalizes it.
func NewFinalized(cfg Config, opts ...Option) (*Modeltime, error) {
	m := New(cfg, opts...)
	if err := m.Finalize(); err != nil {
		return nil, err
	}
	return m, nil
}

// IsFinalized reports whether Finalize has completed.
func (m *Modeltime) IsFinalized() bool {
	return m.finalized
}

// Finalize validates the configuration and builds every derived table.
// Calling it again after success is a no-op. On a validation error nothing
// is built and the configuration can still be changed.
func (m *Modeltime) Finalize() error {
	if m.finalized {
		return nil
	}
	if err := m.cfg.Validate(); err != nil {
		return err
	}

	eras := m.cfg.eras()
	m.eras = make([]EraSummary, len(eras))
	for i, e := range eras {
		s := summarize(e)
		if s.Uneven() {
			m.logger.Warn(eraOrdinal(e.Index)+" time interval not divisible by its time step",
				zap.Int("era", e.Index),
				zap.Int("span", e.Span()),
				zap.Int("time_step", e.Step),
				zap.Int("remainder", s.Remainder),
			)
		}
		m.eras[i] = s
	}

	m.periods = expand(m.cfg.StartYear, segments(m.cfg.TimeStep1, m.eras))
	m.buildYearIndex()
	m.alignData()

	m.finalized = true
	m.logger.Debug("modeltime finalized",
		zap.Int("max_period", len(m.periods)),
		zap.Int("max_data_period", m.maxDataPeriod),
	)
	return nil
}

// buildYearIndex fills the per-period tables and the reverse lookup.
// Years between two representative years belong to the later period.
func (m *Modeltime) buildYearIndex() {
	n := len(m.periods)
	m.periodToTimeStep = make([]int, n)
	m.modelPeriodToYear = make([]int, n)
	m.yearToModelPeriod = make(map[int]int, m.cfg.EndYear-m.cfg.StartYear+1)

	prev := m.cfg.StartYear
	for i, p := range m.periods {
		m.periodToTimeStep[i] = p.Step
		m.modelPeriodToYear[i] = p.Year
		if i == 0 {
			m.yearToModelPeriod[p.Year] = 0
			continue
		}
		for y := prev + 1; y <= p.Year; y++ {
			m.yearToModelPeriod[y] = i
		}
		prev = p.Year
	}

	m.years = make([]int, 0, len(m.yearToModelPeriod))
	for y := range m.yearToModelPeriod {
		m.years = append(m.years, y)
	}
	sort.Ints(m.years)
}

// alignData maps every data-grid year onto the model period representing it.
func (m *Modeltime) alignData() {
	m.maxDataPeriod = (m.cfg.DataEndYear-m.cfg.StartYear)/m.cfg.DataTimeStep + 1
	m.dataOffset = make([]int, m.maxDataPeriod)
	m.dataRatio = make([]decimal.Decimal, m.maxDataPeriod)
	m.dataPeriodToModelPeriod = make([]int, m.maxDataPeriod)

	coincide := m.maxDataPeriod == len(m.periods)
	dataStep := decimal.NewFromInt(int64(m.cfg.DataTimeStep))

	for i := 0; i < m.maxDataPeriod; i++ {
		// Validate keeps DataEndYear inside the span so the year is always indexed.
		p := m.yearToModelPeriod[m.cfg.StartYear+i*m.cfg.DataTimeStep]
		m.dataPeriodToModelPeriod[i] = p
		if coincide {
			m.dataRatio[i] = decimal.Zero
			continue
		}
		step := m.periodToTimeStep[p]
		m.dataOffset[i] = m.cfg.DataTimeStep / step
		m.dataRatio[i] = dataStep.Div(decimal.NewFromInt(int64(step)))
	}
}

func eraOrdinal(i int) string {
	switch i {
	case 1:
		return "first"
	case 2:
		return "second"
	case 3:
		return "third"
	default:
		return "era " + strconv.Itoa(i)
	}
}

func (m *Modeltime) mustBeFinalized() {
	if !m.finalized {
		panic("INVARIANT VIOLATED: modeltime accessed before Finalize")
	}
}
