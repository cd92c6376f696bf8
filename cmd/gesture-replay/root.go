package main

import (
	"github.com/spf13/cobra"

	"github.com/Faultbox/midgard-gesture/internal/logger"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "gesture-replay",
		Short:        "Replay and synthesize recorded touch traces",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "info"
			if verbose {
				level = "debug"
			}
			return logger.InitWithFileConfig(level, logger.FileConfig{}, true)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newReplayCmd())
	root.AddCommand(newSynthCmd())

	return root
}
