package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cctx := newCommandContext()

	root := &cobra.Command{
		Use:   "ccget",
		Short: "Download YouTube closed captions as SubRip files",
		Long: "ccget lists and downloads YouTube caption tracks, converting the\n" +
			"timedtext payload to SubRip (.srt) subtitle files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			return cctx.ensureConfig()
		},
	}

	root.PersistentFlags().StringVarP(&cctx.configFlag, "config", "c", "", "path to the configuration file")
	root.PersistentFlags().StringVar(&cctx.logLevelFlag, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(
		newTracksCommand(cctx),
		newGetCommand(cctx),
		newBatchCommand(cctx),
		newHistoryCommand(cctx),
		newConfigCommand(cctx),
	)

	return root
}
