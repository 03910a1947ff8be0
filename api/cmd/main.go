package main

import (
	"os"

	"github.com/spf13/cobra"

	"Litreview/api"
)

var (
	configPath  string
	autoMigrate bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "litreview",
		Short:        "LITReview - book and article reviews between friends",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (default configs/config.yaml)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := api.Setup(configPath)
			if err != nil {
				return err
			}
			return api.Serve(cfg, autoMigrate)
		},
	}
	serveCmd.Flags().BoolVar(&autoMigrate, "auto-migrate", true, "Create or update the schema before serving")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := api.Setup(configPath)
			if err != nil {
				return err
			}
			return api.Migrate(cfg)
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo accounts, tickets, reviews and follows",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := api.Setup(configPath)
			if err != nil {
				return err
			}
			return api.Seed(cfg)
		},
	}

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
