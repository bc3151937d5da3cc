package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ccget/internal/logging"
	"ccget/internal/youtube"
)

type batchResult struct {
	input   string
	outcome *downloadOutcome
	err     error
}

func newBatchCommand(cctx *commandContext) *cobra.Command {
	var (
		languages   []string
		autoOnly    bool
		manualOnly  bool
		useTitle    bool
		overwrite   bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Download caption tracks for every video listed in a file",
		Long: "Batch reads one video URL or id per line. Blank lines and lines\n" +
			"starting with '#' are skipped. Pass '-' to read the list from stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection := trackSelection{languages: languages, autoOnly: autoOnly, manualOnly: manualOnly}
			if err := selection.validate(); err != nil {
				return err
			}
			entries, err := readBatchFile(cmd, args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return errors.New("batch file lists no videos")
			}
			if concurrency < 1 {
				concurrency = 1
			}

			d, cleanup, err := newDownloader(cctx)
			if err != nil {
				return err
			}
			defer cleanup()

			results := make([]batchResult, len(entries))
			semaphore := make(chan struct{}, concurrency)
			var wg sync.WaitGroup
			for i, entry := range entries {
				wg.Add(1)
				go func(index int, raw string) {
					defer wg.Done()
					select {
					case semaphore <- struct{}{}:
					case <-cmd.Context().Done():
						results[index] = batchResult{input: raw, err: cmd.Context().Err()}
						return
					}
					defer func() { <-semaphore }()
					results[index] = runBatchEntry(cmd.Context(), d, raw, selection, useTitle, overwrite)
				}(i, entry)
			}
			wg.Wait()

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(results))
			failed := 0
			var totalBytes int64
			for _, result := range results {
				if result.err != nil {
					failed++
					rows = append(rows, []string{result.input, "", "failed", result.err.Error()})
					continue
				}
				totalBytes += result.outcome.bytes
				rows = append(rows, []string{
					result.outcome.videoID,
					result.outcome.track.Language.Code,
					"ok",
					result.outcome.path,
				})
			}
			renderTable(out, []string{"VIDEO", "LANG", "RESULT", "DETAIL"}, rows)
			fmt.Fprintf(out, "%d of %d downloads succeeded (%s)\n",
				len(results)-failed, len(results), humanize.Bytes(uint64(totalBytes)))

			if failed > 0 {
				return fmt.Errorf("%d of %d downloads failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&languages, "language", "l", nil, "preferred language codes in priority order")
	cmd.Flags().BoolVar(&autoOnly, "auto", false, "select only auto-generated tracks")
	cmd.Flags().BoolVar(&manualOnly, "manual", false, "select only manually authored tracks")
	cmd.Flags().BoolVar(&useTitle, "use-title", false, "name files after the video title")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace output files that exist")
	cmd.Flags().IntVar(&concurrency, "concurrency", 2, "number of downloads to run at once")
	return cmd
}

func runBatchEntry(ctx context.Context, d *downloader, raw string, selection trackSelection, useTitle, overwrite bool) batchResult {
	videoID, err := youtube.ParseVideoID(raw)
	if err != nil {
		return batchResult{input: raw, err: err}
	}
	outcome, err := d.run(ctx, downloadRequest{
		videoID:   videoID,
		selection: selection,
		useTitle:  useTitle,
		overwrite: overwrite,
	})
	if err != nil {
		logging.ErrorWithContext(d.logger, "batch download failed", "batch_entry_failed",
			logging.String(logging.FieldVideoID, videoID),
			logging.Error(err))
		return batchResult{input: raw, err: err}
	}
	return batchResult{input: raw, outcome: outcome}
}

func readBatchFile(cmd *cobra.Command, path string) ([]string, error) {
	var reader io.Reader
	if path == "-" {
		reader = cmd.InOrStdin()
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open batch file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	var entries []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	return entries, nil
}
