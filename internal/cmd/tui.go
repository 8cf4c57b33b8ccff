package cmd

import (
	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/tasklist/internal/config"
	"github.com/BuzzLyutic/tasklist/internal/service"
	"github.com/BuzzLyutic/tasklist/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal task list (default)",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// stdout belongs to the terminal UI
	logger, err := newLogger(cfg.Log, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	kv, closeKV, err := openStorage(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeKV()

	store := service.NewTaskStore(kv, logger, service.WithStorageKey(cfg.Storage.TasksKey))
	themes := service.NewThemeService(kv, cfg.Storage.ThemeKey)

	return tui.Run(ctx, store, themes, logger)
}
