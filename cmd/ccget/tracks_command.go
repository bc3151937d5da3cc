package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ccget/internal/captions"
	"ccget/internal/youtube"
)

type trackJSON struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

type tracksJSON struct {
	VideoID       string      `json:"video_id"`
	Title         string      `json:"title"`
	Author        string      `json:"author,omitempty"`
	LengthSeconds int64       `json:"length_seconds,omitempty"`
	Tracks        []trackJSON `json:"tracks"`
}

func newTracksCommand(cctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "tracks <url|video-id>",
		Short: "List the caption tracks available for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, err := youtube.ParseVideoID(args[0])
			if err != nil {
				return err
			}
			cfg, err := cctx.configValue()
			if err != nil {
				return err
			}
			logger, err := cctx.commandLogger()
			if err != nil {
				return err
			}
			yt, err := newYouTubeClient(cfg, logger)
			if err != nil {
				return err
			}

			player, err := yt.Player(cmd.Context(), videoID)
			if err != nil {
				return err
			}
			manifest, err := captions.ExtractManifest(&captions.PlayerDocument{Tracks: player.Tracks})
			if err != nil {
				return fmt.Errorf("video %s: %w", videoID, err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				payload := tracksJSON{
					VideoID:       videoID,
					Title:         player.Title,
					Author:        player.Author,
					LengthSeconds: player.LengthSeconds,
					Tracks:        make([]trackJSON, 0, manifest.Len()),
				}
				for _, track := range manifest.Tracks() {
					payload.Tracks = append(payload.Tracks, trackJSON{
						Code: track.Language.Code,
						Name: track.Language.Name,
						Kind: track.Kind(),
						URL:  track.URL,
					})
				}
				return writeJSON(out, payload)
			}

			fmt.Fprintf(out, "%s (%s)\n", player.Title, videoID)
			if manifest.Len() == 0 {
				fmt.Fprintln(out, "No caption tracks available.")
				return nil
			}
			rows := make([][]string, 0, manifest.Len())
			for _, track := range manifest.Tracks() {
				rows = append(rows, []string{track.Language.Code, track.Language.Name, track.Kind()})
			}
			renderTable(out, []string{"CODE", "NAME", "KIND"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the track list as JSON")
	return cmd
}
