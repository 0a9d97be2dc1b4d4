package main

import (
	"github.com/spf13/cobra"

	"github.com/vishnuvarthan48/biomedical-cms/internal/app"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closeLog, err := loadConfig()
			if err != nil {
				return err
			}
			defer closeLog()

			if err := app.RunMigrations(cmd.Context(), cfg.DB.URL); err != nil {
				return err
			}
			utils.Logger.Info("Migrations applied")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var tenantID int64
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load lookup rows for a tenant and the shared RBAC catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closeLog, err := loadConfig()
			if err != nil {
				return err
			}
			defer closeLog()

			application, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			return app.Seed(cmd.Context(), application.DB, tenantID)
		},
	}
	cmd.Flags().Int64Var(&tenantID, "tenant", 1, "tenant id the room types and location levels belong to")
	return cmd
}
