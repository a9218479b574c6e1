// Package cmd - lookup command
package cmd

import (
	stderrors "errors"
	"strconv"

	"github.com/spf13/cobra"

	"modeltime/core/modeltime"
	"modeltime/core/ui"
	"modeltime/internal/errors"
)

// lookupCmd resolves calendar years to model periods
var lookupCmd = &cobra.Command{
	Use:   "lookup <year>...",
	Short: "Resolve calendar years to model periods",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	years := make([]int, len(args))
	for i, arg := range args {
		y, err := strconv.Atoi(arg)
		if err != nil {
			return errors.Newf(errors.TypeInput, "invalid year %q", arg)
		}
		years[i] = y
	}

	mt, err := loadModeltime()
	if err != nil {
		return err
	}

	w := ui.NewWriter(cmd.OutOrStdout(), appConfig.Output.NoColor)
	misses := 0
	for _, y := range years {
		p, err := mt.YearToPeriod(y)
		if stderrors.Is(err, modeltime.ErrYearNotModeled) {
			w.Error("%d: not modeled (%d-%d)", y, mt.StartYear(), mt.EndYear())
			misses++
			continue
		}
		w.Println("%d: period %d (year %d)", y, p, mt.PeriodToYear(p))
	}

	if misses > 0 {
		return errors.Newf(errors.TypeNotFound, "%d of %d years not modeled", misses, len(years))
	}
	return nil
}
