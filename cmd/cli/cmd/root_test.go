package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hclInput = `
modeltime {
  start_year     = 2000
  inter_year_1   = 2007
  inter_year_2   = 2017
  end_year       = 2027
  time_step_1    = 5
  time_step_2    = 5
  time_step_3    = 10
  data_end_year  = 2020
  data_time_step = 5
}
`

// run executes the root command with a fresh set of flag values.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile, inputFile, verbose, outputFormat, inputOnly = "", "", false, "", false

	dir := t.TempDir()
	full := append([]string{"--config", filepath.Join(dir, "absent.json")}, args...)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(full)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestScheduleDefaultConfig(t *testing.T) {
	out, err := run(t, "schedule", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "## Model time 1990-2095")
	assert.Contains(t, out, "| 15 | 2095 | 10 | 3 |  |")
}

func TestScheduleFromHCL(t *testing.T) {
	path := writeInput(t, "modeltime.hcl", hclInput)

	out, err := run(t, "schedule", "--input", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"year": 2027`)
	assert.Contains(t, out, `"remainder": 2`)
}

func TestScheduleUnknownFormat(t *testing.T) {
	_, err := run(t, "schedule", "--format", "html")
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	out, err := run(t, "lookup", "1990", "2036")
	require.NoError(t, err)
	assert.Contains(t, out, "1990: period 0 (year 1990)")
	assert.Contains(t, out, "2036: period 10 (year 2045)")

	out, err = run(t, "lookup", "1800")
	assert.Error(t, err)
	assert.Contains(t, out, "1800: not modeled")
}

func TestDebugFromXML(t *testing.T) {
	path := writeInput(t, "scenario.xml", `<modeltime>
	<startyear>2000</startyear><interyear1>2007</interyear1><interyear2>2017</interyear2>
	<endyear>2027</endyear><timestep1>5</timestep1><timestep2>5</timestep2>
	<timestep3>10</timestep3><dataend>2020</dataend><datatimestep>5</datatimestep>
</modeltime>`)

	out, err := run(t, "debug", "2", "--input", path)
	require.NoError(t, err)
	assert.Contains(t, out, "<periodToTimeStep>2</periodToTimeStep>")
	assert.Contains(t, out, "<modelPeriodToYear>2007</modelPeriodToYear>")

	out, err = run(t, "debug", "--input-only", "--input", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "periodToTimeStep")
	assert.Contains(t, out, "<endyear>2027</endyear>")
}

func TestInvalidInput(t *testing.T) {
	path := writeInput(t, "bad.hcl", "modeltime {\n start_year = 2000\n}")
	_, err := run(t, "schedule", "--input", path)
	assert.Error(t, err)

	_, err = run(t, "schedule", "--input", writeInput(t, "x.yaml", "a: 1"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "modeltime version "+version)
}
