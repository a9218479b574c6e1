// Package cmd - schedule command
package cmd

import (
	"github.com/spf13/cobra"

	"modeltime/core/output"
)

var outputFormat string

// scheduleCmd renders the full period schedule
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the period schedule and data alignment",
	Args:  cobra.NoArgs,
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown); defaults to the config value")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	mt, err := loadModeltime()
	if err != nil {
		return err
	}

	format := outputFormat
	if format == "" {
		format = appConfig.Output.DefaultFormat
	}

	formatter, err := output.NewRegistry(appConfig.Output.NoColor).Get(output.Format(format))
	if err != nil {
		return err
	}
	return formatter.Render(cmd.OutOrStdout(), output.NewReport(mt))
}
