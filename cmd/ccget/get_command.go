package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ccget/internal/youtube"
)

func newGetCommand(cctx *commandContext) *cobra.Command {
	var (
		languages  []string
		autoOnly   bool
		manualOnly bool
		output     string
		useTitle   bool
		overwrite  bool
	)

	cmd := &cobra.Command{
		Use:   "get <url|video-id>",
		Short: "Download one caption track as a SubRip file",
		Long: "Get fetches the caption track matching your language preference and\n" +
			"writes it as a SubRip (.srt) file. Without --output the file lands in\n" +
			"the configured output directory, named after the video id.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := youtube.ParseVideoID(args[0])
			if err != nil {
				return err
			}
			selection := trackSelection{languages: languages, autoOnly: autoOnly, manualOnly: manualOnly}
			if err := selection.validate(); err != nil {
				return err
			}

			d, cleanup, err := newDownloader(cctx)
			if err != nil {
				return err
			}
			defer cleanup()

			req := downloadRequest{
				videoID:   videoID,
				selection: selection,
				useTitle:  useTitle,
				overwrite: overwrite,
			}

			if output == "-" {
				_, err := d.stream(cmd.Context(), cmd.OutOrStdout(), req)
				return err
			}
			req.outputPath = output

			progress, finishBar := progressFor(cmd.ErrOrStderr(), fmt.Sprintf("downloading %s", videoID))
			req.progress = progress

			outcome, err := d.run(cmd.Context(), req)
			if err != nil {
				return err
			}
			finishBar()

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s captions to %s (%d captions, %s)\n",
				outcome.track.Language, outcome.path, outcome.captions, humanize.Bytes(uint64(outcome.bytes)))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&languages, "language", "l", nil, "preferred language codes in priority order")
	cmd.Flags().BoolVar(&autoOnly, "auto", false, "select only auto-generated tracks")
	cmd.Flags().BoolVar(&manualOnly, "manual", false, "select only manually authored tracks")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path, '-' writes to stdout")
	cmd.Flags().BoolVar(&useTitle, "use-title", false, "name the file after the video title")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the output file if it exists")
	return cmd
}
