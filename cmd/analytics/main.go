package main

import (
	"delivery_analytics/constants"
	"delivery_analytics/custom/report"
	"delivery_analytics/custom/store"
	"delivery_analytics/custom/util"
	"errors"
	"github.com/romana/rlog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"os"
	"time"
)

const (
	flagConfig = "config"
	flagSeed   = "seed"
	flagFormat = "format"
	flagNow    = "now"
	flagOnly   = "only"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		rlog.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "analytics",
	Short:         "Food delivery analytics reports",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the analytics reports and print them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		if err = report.ValidateFormat(config.Output_format); err != nil {
			return err
		}
		now, err := config.ReferenceTime(time.Now())
		if err != nil {
			return err
		}
		only, _ := cmd.Flags().GetStringSlice(flagOnly)
		reports, err := report.Select(only)
		if err != nil {
			return err
		}

		snapshot, err := loadSnapshot(config)
		if err != nil {
			return err
		}
		for _, problem := range snapshot.Validate() {
			rlog.Warn(problem)
		}

		tables, err := report.RunReports(reports, snapshot, now)
		if err != nil {
			return err
		}
		return report.Render(cmd.OutOrStdout(), config.Output_format, tables)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the analytics tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		db, err := util.OpenDatabase(config)
		if err != nil {
			return err
		}
		if err = store.Migrate(db); err != nil {
			return err
		}
		rlog.Info("Migrated analytics tables")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a seed file into the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		if config.Seed_file == "" {
			return errors.New(constants.SEED_FILE_REQUIRED)
		}
		snapshot, err := store.LoadFromFile(config.Seed_file)
		if err != nil {
			return err
		}
		for _, problem := range snapshot.Validate() {
			rlog.Warn(problem)
		}
		db, err := util.OpenDatabase(config)
		if err != nil {
			return err
		}
		if err = store.Migrate(db); err != nil {
			return err
		}
		return store.Seed(db, snapshot)
	},
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())
	addReportFlags(reportCmd.Flags())

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String(flagConfig, "./config/config.yaml", "config file")
	flags.String(flagSeed, "", "JSON seed file, overrides seed_file in the config")
}

func addReportFlags(flags *pflag.FlagSet) {
	flags.String(flagFormat, constants.OUTPUT_FORMAT_TEXT, "output format: text or json, overrides output_format")
	flags.String(flagNow, "", "reference date (YYYY-MM-DD), overrides reference_date")
	flags.StringSlice(flagOnly, nil, "comma separated report keys to run")
}

func loadConfig(flags *pflag.FlagSet) (*util.AppConfig, error) {
	configFile, _ := flags.GetString(flagConfig)
	config := util.AppConfig{}
	if _, err := config.GetConf(configFile); err != nil {
		return nil, err
	}
	applyFlags(&config, flags)
	return &config, nil
}

// applyFlags lets command line values win over the config file. --format and
// --now only apply when given explicitly.
func applyFlags(config *util.AppConfig, flags *pflag.FlagSet) {
	if seed, _ := flags.GetString(flagSeed); seed != "" {
		config.Seed_file = seed
	}
	if flags.Changed(flagFormat) {
		config.Output_format, _ = flags.GetString(flagFormat)
	}
	if flags.Changed(flagNow) {
		config.Reference_date, _ = flags.GetString(flagNow)
	}
}

// loadSnapshot prefers the seed file and falls back to the database.
func loadSnapshot(config *util.AppConfig) (*store.Snapshot, error) {
	if config.Seed_file != "" {
		return store.LoadFromFile(config.Seed_file)
	}
	db, err := util.OpenDatabase(config)
	if err != nil {
		return nil, err
	}
	return store.LoadFromDB(db)
}
