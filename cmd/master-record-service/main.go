package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	_ "time/tzdata"

	"github.com/vishnuvarthan48/biomedical-cms/internal/config"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Master records for the biomedical CMMS: facilities, device dropdowns, role permissions, store items",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		utils.Logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

// loadConfig is shared by every subcommand.
func loadConfig() (*config.Config, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	closeLog := func() {}
	if cfg.Log.File != "" {
		sink := utils.AttachFileSink(cfg.Log.File)
		closeLog = func() { _ = sink.Close() }
	}
	return cfg, closeLog, nil
}
