// Package cmd - debug command
package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"modeltime/adapters/xmlconfig"
	"modeltime/internal/errors"
)

var inputOnly bool

// debugCmd writes the derived values of one period as XML
var debugCmd = &cobra.Command{
	Use:   "debug [period]",
	Short: "Write the modeltime debug XML for a period",
	Long: `Write the configuration along with the step, data offset and year of
one period. With --input-only the configuration is written alone, in the
form the XML loader reads back.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDebug,
}

func init() {
	debugCmd.Flags().BoolVar(&inputOnly, "input-only", false, "write only the <modeltime> input element")
}

func runDebug(cmd *cobra.Command, args []string) error {
	mt, err := loadModeltime()
	if err != nil {
		return err
	}
	if inputOnly {
		return xmlconfig.WriteInput(cmd.OutOrStdout(), mt.Config())
	}

	period := mt.BasePeriod()
	if len(args) > 0 {
		period, err = strconv.Atoi(args[0])
		if err != nil {
			return errors.Newf(errors.TypeInput, "invalid period %q", args[0])
		}
	}
	return xmlconfig.WriteDebug(cmd.OutOrStdout(), mt, period)
}
