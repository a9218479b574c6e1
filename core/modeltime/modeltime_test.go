package modeltime

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"modeltime/internal/errors"
)

func scenarioA() Config {
	return Config{
		StartYear: 1990, InterYear1: 2005, InterYear2: 2035, EndYear: 2095,
		TimeStep1: 5, TimeStep2: 5, TimeStep3: 10,
		DataEndYear: 2005, DataTimeStep: 5,
	}
}

// scenarioB has an uneven first era: 2000..2007 with 5-year steps.
func scenarioB() Config {
	return Config{
		StartYear: 2000, InterYear1: 2007, InterYear2: 2017, EndYear: 2027,
		TimeStep1: 5, TimeStep2: 5, TimeStep3: 10,
		DataEndYear: 2020, DataTimeStep: 5,
	}
}

func observed(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func TestScenarioA(t *testing.T) {
	m, err := NewFinalized(scenarioA())
	require.NoError(t, err)

	eras := m.Eras()
	require.Len(t, eras, 3)
	assert.Equal(t, 3, eras[0].Full)
	assert.Equal(t, 3, eras[0].WithRemainder)
	assert.Equal(t, 6, eras[1].Full)
	assert.Equal(t, 6, eras[2].Full)

	assert.Equal(t, 16, m.MaxPeriod())
	assert.Equal(t, 0, m.BasePeriod())

	wantYears := []int{1990, 1995, 2000, 2005, 2010, 2015, 2020, 2025, 2030, 2035,
		2045, 2055, 2065, 2075, 2085, 2095}
	for p, y := range wantYears {
		assert.Equal(t, y, m.PeriodToYear(p), "period %d", p)
	}
	assert.Equal(t, 5, m.TimeStep(0))
	assert.Equal(t, 5, m.TimeStep(9))
	assert.Equal(t, 10, m.TimeStep(10))

	p, err := m.YearToPeriod(1990)
	require.NoError(t, err)
	assert.Equal(t, 0, p)

	p, err = m.YearToPeriod(2095)
	require.NoError(t, err)
	assert.Equal(t, m.MaxPeriod()-1, p)

	assert.Equal(t, 4, m.MaxDataPeriod())
	for i := 0; i < m.MaxDataPeriod(); i++ {
		assert.Equal(t, i, m.DataPeriodToModelPeriod(i))
		assert.Equal(t, 1, m.DataOffset(i))
		assert.True(t, decimal.NewFromInt(1).Equal(m.DataOffsetRatio(i)))
	}
}

func TestYearsAttributedForward(t *testing.T) {
	m, err := NewFinalized(scenarioA())
	require.NoError(t, err)

	tests := []struct {
		year int
		want int
	}{
		{1991, 1},
		{1994, 1},
		{1995, 1},
		{1996, 2},
		{2035, 9},
		{2036, 10},
		{2044, 10},
		{2045, 10},
		{2094, 15},
	}
	for _, tt := range tests {
		got, err := m.YearToPeriod(tt.year)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "year %d", tt.year)
	}
}

func TestScenarioBUnevenEra(t *testing.T) {
	logger, logs := observed(zapcore.WarnLevel)

	m, err := NewFinalized(scenarioB(), WithLogger(logger))
	require.NoError(t, err)

	first := m.Eras()[0]
	assert.Equal(t, 1, first.Full)
	assert.Equal(t, 2, first.WithRemainder)
	assert.Equal(t, 2, first.Remainder)
	assert.True(t, first.Uneven())

	warnings := logs.FilterMessageSnippet("not divisible")
	require.Equal(t, 1, warnings.Len())
	entry := warnings.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "first")
	assert.Equal(t, int64(2), entry.ContextMap()["remainder"])

	periods := m.Periods()
	require.Len(t, periods, 6)
	assert.Equal(t, []int{2000, 2005, 2007, 2012, 2017, 2027}, yearsOf(periods))
	assert.True(t, periods[2].Remainder)
	assert.Equal(t, 2, periods[2].Step)
	assert.Equal(t, 1, periods[2].Era)

	for year, want := range map[int]int{2001: 1, 2005: 1, 2006: 2, 2007: 2, 2008: 3, 2018: 5, 2027: 5} {
		got, err := m.YearToPeriod(year)
		require.NoError(t, err)
		assert.Equal(t, want, got, "year %d", year)
	}
}

func TestDataAlignmentCoarserModelSteps(t *testing.T) {
	m, err := NewFinalized(scenarioB())
	require.NoError(t, err)

	dp := m.DataPeriods()
	require.Len(t, dp, 5)
	assert.Equal(t, []int{0, 1, 3, 4, 5}, modelPeriodsOf(dp))
	assert.Equal(t, []int{1, 1, 1, 1, 0}, offsetsOf(dp))
	assert.Equal(t, 2020, dp[4].Year)
	assert.True(t, decimal.RequireFromString("0.5").Equal(dp[4].Ratio), "got %s", dp[4].Ratio)
}

func TestDataAlignmentCoincidingGrids(t *testing.T) {
	cfg := Config{
		StartYear: 2000, InterYear1: 2010, InterYear2: 2020, EndYear: 2030,
		TimeStep1: 5, TimeStep2: 5, TimeStep3: 5,
		DataEndYear: 2030, DataTimeStep: 5,
	}
	m, err := NewFinalized(cfg)
	require.NoError(t, err)

	require.Equal(t, m.MaxPeriod(), m.MaxDataPeriod())
	for i := 0; i < m.MaxDataPeriod(); i++ {
		assert.Equal(t, 0, m.DataOffset(i))
		assert.Equal(t, i, m.DataPeriodToModelPeriod(i))
		assert.True(t, m.DataOffsetRatio(i).IsZero())
	}
}

func TestLookupMiss(t *testing.T) {
	logger, logs := observed(zapcore.ErrorLevel)
	m, err := NewFinalized(scenarioA(), WithLogger(logger))
	require.NoError(t, err)

	for _, year := range []int{1800, 1989, 2096} {
		_, err := m.YearToPeriod(year)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrYearNotModeled)
		assert.True(t, errors.IsType(err, errors.TypeNotFound))
	}
	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 3)
	assert.Equal(t, int64(1800), entries[0].ContextMap()["year"])
}

func TestScheduleProperties(t *testing.T) {
	for start := 1971; start <= 1975; start++ {
		for _, inter1 := range []int{start, start + 1, start + 9, start + 20} {
			for _, inter2 := range []int{inter1, inter1 + 7, inter1 + 30} {
				for _, end := range []int{inter2 + 1, inter2 + 23, inter2 + 60} {
					for _, steps := range [][3]int{{1, 1, 1}, {5, 5, 10}, {3, 7, 4}, {10, 15, 25}} {
						cfg := Config{
							StartYear: start, InterYear1: inter1, InterYear2: inter2, EndYear: end,
							TimeStep1: steps[0], TimeStep2: steps[1], TimeStep3: steps[2],
							DataEndYear: end, DataTimeStep: steps[0],
						}
						checkProperties(t, cfg)
					}
				}
			}
		}
	}
}

func checkProperties(t *testing.T, cfg Config) {
	t.Helper()
	m, err := NewFinalized(cfg)
	require.NoError(t, err, "%+v", cfg)

	n := m.MaxPeriod()
	assert.Equal(t, cfg.StartYear, m.PeriodToYear(0))
	assert.Equal(t, cfg.EndYear, m.PeriodToYear(n-1), "%+v", cfg)

	total := 1
	for _, e := range m.Eras() {
		total += e.WithRemainder
		if e.Span()%e.Step == 0 {
			assert.Equal(t, e.Full, e.WithRemainder)
		}
	}
	assert.Equal(t, total, n)

	sum := 0
	for p := 1; p < n; p++ {
		step := m.TimeStep(p)
		assert.GreaterOrEqual(t, step, 1)
		sum += step
		assert.Greater(t, m.PeriodToYear(p), m.PeriodToYear(p-1))
	}
	assert.Equal(t, cfg.EndYear-cfg.StartYear, sum)

	for p := 0; p < n; p++ {
		got, err := m.YearToPeriod(m.PeriodToYear(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	for y := cfg.StartYear; y <= cfg.EndYear; y++ {
		p, err := m.YearToPeriod(y)
		require.NoError(t, err)
		assert.True(t, p >= 0 && p < n)
		again, _ := m.YearToPeriod(y)
		assert.Equal(t, p, again)
	}
	assert.Len(t, m.Years(), cfg.EndYear-cfg.StartYear+1)

	for i := 1; i < m.MaxDataPeriod(); i++ {
		assert.GreaterOrEqual(t, m.DataPeriodToModelPeriod(i), m.DataPeriodToModelPeriod(i-1))
	}
}

func TestValidateCollectsViolations(t *testing.T) {
	err := Config{}.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 5, e.Context["violations"])
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"start after end", func(c *Config) { c.StartYear = 2100 }},
		{"inter1 before start", func(c *Config) { c.InterYear1 = 1980 }},
		{"inter2 before inter1", func(c *Config) { c.InterYear2 = 2000 }},
		{"end before inter2", func(c *Config) { c.InterYear2 = 2096 }},
		{"zero step", func(c *Config) { c.TimeStep2 = 0 }},
		{"negative step", func(c *Config) { c.TimeStep3 = -5 }},
		{"zero data step", func(c *Config) { c.DataTimeStep = 0 }},
		{"data end past end", func(c *Config) { c.DataEndYear = 2100 }},
		{"data end before start", func(c *Config) { c.DataEndYear = 1985 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scenarioA()
			tt.mutate(&cfg)
			m := New(cfg)
			err := m.Finalize()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeConfig))
			assert.False(t, m.IsFinalized())
		})
	}
}

func TestEmptyEraAllowed(t *testing.T) {
	cfg := scenarioA()
	cfg.InterYear2 = cfg.EndYear
	m, err := NewFinalized(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Eras()[2].WithRemainder)
	assert.Equal(t, cfg.EndYear, m.PeriodToYear(m.MaxPeriod()-1))
}

func TestLifecycle(t *testing.T) {
	cfg := scenarioA()
	cfg.TimeStep1 = 0
	m := New(cfg)

	assert.PanicsWithValue(t, "INVARIANT VIOLATED: modeltime accessed before Finalize", func() {
		m.MaxPeriod()
	})

	require.Error(t, m.Finalize())
	require.NoError(t, m.SetTimeStep1(5))
	require.NoError(t, m.Finalize())
	assert.True(t, m.IsFinalized())

	before := m.Periods()
	require.NoError(t, m.Finalize())
	assert.Equal(t, before, m.Periods())

	assert.ErrorIs(t, m.SetEndYear(2100), ErrFinalized)
	assert.Equal(t, 2095, m.EndYear())
}

func TestSettersPopulateConfig(t *testing.T) {
	m := New(Config{})
	want := scenarioA()
	for _, set := range []func() error{
		func() error { return m.SetStartYear(want.StartYear) },
		func() error { return m.SetInterYear1(want.InterYear1) },
		func() error { return m.SetInterYear2(want.InterYear2) },
		func() error { return m.SetEndYear(want.EndYear) },
		func() error { return m.SetTimeStep1(want.TimeStep1) },
		func() error { return m.SetTimeStep2(want.TimeStep2) },
		func() error { return m.SetTimeStep3(want.TimeStep3) },
		func() error { return m.SetDataEndYear(want.DataEndYear) },
		func() error { return m.SetDataTimeStep(want.DataTimeStep) },
	} {
		require.NoError(t, set())
	}
	assert.Equal(t, want, m.Config())
	assert.Equal(t, 1990, m.StartYear())
	assert.Equal(t, 2005, m.InterYear1())
	assert.Equal(t, 2035, m.InterYear2())
	assert.Equal(t, 10, m.TimeStep3())
	assert.Equal(t, 2005, m.DataEndYear())
	assert.Equal(t, 5, m.DataTimeStep())
}

func TestConcurrentReads(t *testing.T) {
	m, err := NewFinalized(scenarioA())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := m.StartYear(); y <= m.EndYear(); y++ {
				if _, err := m.YearToPeriod(y); err != nil {
					t.Errorf("year %d: %v", y, err)
				}
			}
		}()
	}
	wg.Wait()
}

func yearsOf(ps []Period) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.Year
	}
	return out
}

func modelPeriodsOf(dp []DataPeriod) []int {
	out := make([]int, len(dp))
	for i, d := range dp {
		out[i] = d.ModelPeriod
	}
	return out
}

func offsetsOf(dp []DataPeriod) []int {
	out := make([]int, len(dp))
	for i, d := range dp {
		out[i] = d.Offset
	}
	return out
}
