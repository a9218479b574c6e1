// Package series provides period-indexed containers built on a finalized modeltime.
package series

import (
	"github.com/shopspring/decimal"

	"modeltime/core/modeltime"
	"modeltime/internal/errors"
)

// PeriodVector holds one value per model period.
type PeriodVector[T any] struct {
	mt     *modeltime.Modeltime
	values []T
}

// NewPeriodVector creates a zero-valued vector sized to the schedule.
func NewPeriodVector[T any](mt *modeltime.Modeltime) PeriodVector[T] {
	return PeriodVector[T]{
		mt:     mt,
		values: make([]T, mt.MaxPeriod()),
	}
}

// Len returns the number of periods
func (v PeriodVector[T]) Len() int {
	return len(v.values)
}

// Get returns the value of period p
func (v PeriodVector[T]) Get(p int) T {
	return v.values[p]
}

// Set stores the value of period p
func (v PeriodVector[T]) Set(p int, value T) {
	v.values[p] = value
}

// AtYear returns the value of the period representing year.
func (v PeriodVector[T]) AtYear(year int) (T, error) {
	p, err := v.mt.YearToPeriod(year)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.values[p], nil
}

// Values returns a copy of the underlying values
func (v PeriodVector[T]) Values() []T {
	return append([]T(nil), v.values...)
}

// AlignData places a data-grid series onto model periods. values holds one
// entry per data period. Model periods no data point maps to stay zero and
// are reported as false in the returned mask.
func AlignData(mt *modeltime.Modeltime, values []decimal.Decimal) (PeriodVector[decimal.Decimal], []bool, error) {
	if len(values) != mt.MaxDataPeriod() {
		return PeriodVector[decimal.Decimal]{}, nil, errors.Newf(errors.TypeInput,
			"data series has %d values, expected %d data periods", len(values), mt.MaxDataPeriod()).
			WithContext("data_end_year", mt.DataEndYear()).
			WithContext("data_time_step", mt.DataTimeStep())
	}

	out := NewPeriodVector[decimal.Decimal](mt)
	for i := range out.values {
		out.values[i] = decimal.Zero
	}
	set := make([]bool, out.Len())
	for i, value := range values {
		p := mt.DataPeriodToModelPeriod(i)
		out.values[p] = value
		set[p] = true
	}
	return out, set, nil
}
