package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/BuzzLyutic/tasklist/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tasklist",
	Short: "Personal task list",
	Long: `tasklist keeps a single personal list of tasks with categories,
priorities, filtering and search. Run without a subcommand to open the
terminal UI, or use "serve" to expose the same list over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Init(cfgFile)
	},
	RunE: runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.config/tasklist/config.yaml)")
	rootCmd.PersistentFlags().String("storage", "", "storage driver: file, memory or postgres")
	_ = viper.BindPFlag("storage.driver", rootCmd.PersistentFlags().Lookup("storage"))
}
