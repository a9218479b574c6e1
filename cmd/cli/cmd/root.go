// Package cmd provides the CLI commands for modeltime.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"modeltime/adapters/hclconfig"
	"modeltime/adapters/xmlconfig"
	"modeltime/core/modeltime"
	"modeltime/internal/config"
	"modeltime/internal/errors"
	"modeltime/internal/logging"
)

const version = "0.1.0"

var (
	cfgFile   string
	inputFile string
	verbose   bool

	appConfig = config.Default()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "modeltime",
	Short: "Build and inspect the model period schedule",
	Long: `modeltime turns a start year, two intermediate years, an end year and
per-era time steps into the model period schedule, and aligns the data
year grid onto it.

The schedule is read from --input (a <modeltime> XML document or an HCL
file with a modeltime block), or from the application config.

Examples:
  modeltime schedule --input scenario.xml
  modeltime schedule --format json --input modeltime.hcl
  modeltime lookup 2003 2040 --input scenario.xml
  modeltime debug 4`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.modeltime.json)")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "modeltime document (.xml or .hcl)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() error {
	path := cfgFile
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".modeltime.json")
		}
	}

	appConfig = config.Default()
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg
	}

	if verbose {
		appConfig.Logging.Level = "debug"
	}
	if err := logging.Initialize(appConfig.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	return nil
}

// loadModeltime reads the configured schedule and finalizes it.
func loadModeltime() (*modeltime.Modeltime, error) {
	logger := logging.Named("modeltime")

	cfg := appConfig.Modeltime
	if inputFile != "" {
		var err error
		cfg, err = readInput(inputFile, logger)
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("finalizing schedule", zap.Any("config", cfg))
	return modeltime.NewFinalized(cfg, modeltime.WithLogger(logger))
}

func readInput(path string, logger *zap.Logger) (modeltime.Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		f, err := os.Open(path)
		if err != nil {
			return modeltime.Config{}, errors.Wrapf(errors.TypeInput, err, "open %s", path)
		}
		defer f.Close()
		return xmlconfig.NewParser(logger).Parse(f)
	case ".hcl":
		return hclconfig.NewLoader().LoadFile(path)
	default:
		return modeltime.Config{}, errors.Newf(errors.TypeInput, "unsupported input format %q (want .xml or .hcl)", filepath.Ext(path))
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "modeltime version %s\n", version)
	},
}
