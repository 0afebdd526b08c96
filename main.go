package main

import (
	"fmt"
	"os"
	"strconv"

	"ecometer/config"
	"ecometer/services"
	"ecometer/utils"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:          "ecometer",
		Short:        "EcoMeter footprint tracking and rewards service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to YAML config file")

	root.AddCommand(
		newServeCmd(&configFile),
		newMigrateCmd(&configFile),
		newBaselineCmd(),
	)
	return root
}

func newMigrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the postgres tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			utils.InitLogger(cfg.Log)

			db, err := openDB(cfg.Database.URL)
			if err != nil {
				return err
			}
			if err := services.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			utils.Logger.Info().Msg("✅ database migrated")
			return nil
		},
	}
}

func newBaselineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "baseline <location> <household-size>",
		Short: "Print the yearly baseline footprint (tons CO2) for a household",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("household size must be an integer: %w", err)
			}
			baseline, err := services.ComputeBaseline(args[0], size)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", baseline)
			return err
		},
	}
}

func openDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
