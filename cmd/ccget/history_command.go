package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ccget/internal/store"
)

type historyEntryJSON struct {
	ID         string     `json:"id"`
	VideoID    string     `json:"video_id"`
	Title      string     `json:"title,omitempty"`
	Language   string     `json:"language"`
	TrackKind  string     `json:"track_kind"`
	OutputPath string     `json:"output_path"`
	Status     string     `json:"status"`
	Captions   int        `json:"captions"`
	Bytes      int64      `json:"bytes"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func newHistoryCommand(cctx *commandContext) *cobra.Command {
	var (
		limit      int
		videoID    string
		statusName string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the download history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var status store.Status
			if statusName != "" {
				parsed, ok := store.ParseStatus(statusName)
				if !ok {
					return fmt.Errorf("unknown status %q (valid: %s)", statusName, statusNames())
				}
				status = parsed
			}

			st, err := openHistory(cctx)
			if err != nil {
				return err
			}
			defer st.Close()

			var downloads []*store.Download
			switch {
			case videoID != "":
				downloads, err = st.ByVideo(cmd.Context(), videoID)
				if err == nil && status != "" {
					downloads = filterStatus(downloads, status)
				}
			case status != "":
				downloads, err = st.ByStatus(cmd.Context(), status, limit)
			default:
				downloads, err = st.Recent(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				payload := make([]historyEntryJSON, 0, len(downloads))
				for _, dl := range downloads {
					payload = append(payload, historyEntryJSON{
						ID:         dl.ID,
						VideoID:    dl.VideoID,
						Title:      dl.Title,
						Language:   dl.Language,
						TrackKind:  dl.TrackKind,
						OutputPath: dl.OutputPath,
						Status:     string(dl.Status),
						Captions:   dl.Captions,
						Bytes:      dl.Bytes,
						Error:      dl.ErrorMessage,
						StartedAt:  dl.StartedAt,
						FinishedAt: dl.FinishedAt,
					})
				}
				return writeJSON(out, payload)
			}

			if len(downloads) == 0 {
				fmt.Fprintln(out, "No downloads recorded.")
				return nil
			}
			rows := make([][]string, 0, len(downloads))
			for _, dl := range downloads {
				rows = append(rows, []string{
					humanize.Time(dl.StartedAt),
					dl.VideoID,
					dl.Language,
					dl.TrackKind,
					string(dl.Status),
					strconv.Itoa(dl.Captions),
					humanize.Bytes(uint64(dl.Bytes)),
				})
			}
			renderTable(out, []string{"WHEN", "VIDEO", "LANG", "KIND", "STATUS", "CAPTIONS", "SIZE"}, rows, "CAPTIONS", "SIZE")
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries to list")
	cmd.Flags().StringVar(&videoID, "video", "", "list only entries for this video id")
	cmd.Flags().StringVar(&statusName, "status", "", "list only entries with this status")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the history as JSON")

	cmd.AddCommand(newHistoryStatsCommand(cctx), newHistoryClearCommand(cctx))
	return cmd
}

func filterStatus(downloads []*store.Download, status store.Status) []*store.Download {
	filtered := make([]*store.Download, 0, len(downloads))
	for _, dl := range downloads {
		if dl.Status == status {
			filtered = append(filtered, dl)
		}
	}
	return filtered
}

func statusNames() string {
	statuses := store.AllStatuses()
	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, string(status))
	}
	return strings.Join(names, ", ")
}

func newHistoryStatsCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the download history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openHistory(cctx)
			if err != nil {
				return err
			}
			defer st.Close()

			stats, err := st.Stats(cmd.Context())
			if err != nil {
				return err
			}
			rows := [][]string{
				{"Total", strconv.Itoa(stats.Total)},
				{"Completed", strconv.Itoa(stats.Completed)},
				{"Failed", strconv.Itoa(stats.Failed)},
				{"Canceled", strconv.Itoa(stats.Canceled)},
				{"In flight", strconv.Itoa(stats.InFlight)},
				{"Downloaded", humanize.Bytes(uint64(stats.TotalBytes))},
			}
			renderTable(cmd.OutOrStdout(), []string{"METRIC", "VALUE"}, rows, "VALUE")
			return nil
		},
	}
}

func newHistoryClearCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every download history entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openHistory(cctx)
			if err != nil {
				return err
			}
			defer st.Close()

			removed, err := st.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d history entries.\n", removed)
			return nil
		},
	}
}

func openHistory(cctx *commandContext) (*store.Store, error) {
	cfg, err := cctx.configValue()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg)
}
