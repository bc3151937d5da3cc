package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"ccget/internal/captions"
	"ccget/internal/config"
	"ccget/internal/fileutil"
	"ccget/internal/logging"
	"ccget/internal/store"
	"ccget/internal/textutil"
	"ccget/internal/youtube"
)

// downloadRequest describes one caption download.
type downloadRequest struct {
	videoID    string
	selection  trackSelection
	outputPath string
	useTitle   bool
	overwrite  bool
	progress   captions.ProgressFunc
}

// downloadOutcome reports a finished download.
type downloadOutcome struct {
	videoID  string
	title    string
	track    captions.TrackInfo
	path     string
	captions int
	bytes    int64
}

// downloader wires the player client, the caption pipeline, and the history
// store together for the get and batch commands.
type downloader struct {
	cfg     *config.Config
	yt      *youtube.Client
	client  *captions.Client
	history *store.Store
	logger  *slog.Logger
}

// newDownloader builds a downloader from the loaded configuration. The
// returned cleanup closes the history store and must always be called.
// A history store that fails to open disables recording for the run
// instead of blocking the download.
func newDownloader(cctx *commandContext) (*downloader, func(), error) {
	cfg, err := cctx.configValue()
	if err != nil {
		return nil, nil, err
	}
	logger, err := cctx.commandLogger()
	if err != nil {
		return nil, nil, err
	}
	yt, err := newYouTubeClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	d := &downloader{
		cfg:    cfg,
		yt:     yt,
		client: captions.NewClient(yt, logger),
		logger: logging.NewComponentLogger(logger, "cli"),
	}
	cleanup := func() {}
	if cfg.History.Enabled {
		st, err := store.Open(cfg)
		if err != nil {
			d.logger.Warn("history store unavailable", logging.Error(err))
		} else {
			d.history = st
			cleanup = func() { _ = st.Close() }
		}
	}
	return d, cleanup, nil
}

// resolveTrack fetches the player response and picks the caption track the
// request asks for.
func (d *downloader) resolveTrack(ctx context.Context, req downloadRequest) (*youtube.Player, captions.TrackInfo, error) {
	player, err := d.yt.Player(ctx, req.videoID)
	if err != nil {
		return nil, captions.TrackInfo{}, err
	}
	manifest, err := captions.ExtractManifest(&captions.PlayerDocument{Tracks: player.Tracks})
	if err != nil {
		return nil, captions.TrackInfo{}, fmt.Errorf("video %s: %w", req.videoID, err)
	}
	track, err := req.selection.pick(d.cfg, manifest)
	if err != nil {
		return nil, captions.TrackInfo{}, fmt.Errorf("video %s: %w", req.videoID, err)
	}
	return player, track, nil
}

// run downloads one caption track to a file, holding a lock on the output
// path for the duration and recording the attempt in the history store.
func (d *downloader) run(ctx context.Context, req downloadRequest) (*downloadOutcome, error) {
	player, track, err := d.resolveTrack(ctx, req)
	if err != nil {
		return nil, err
	}

	path, err := d.outputPath(req, player, track)
	if err != nil {
		return nil, err
	}

	if !req.overwrite && !d.cfg.Output.OverwriteExisting {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("output %s already exists (pass --overwrite to replace it)", path)
		}
	}

	dir := filepath.Dir(path)
	if err := fileutil.EnsureDir(dir); err != nil {
		return nil, err
	}
	if err := fileutil.CheckWritableDir(dir); err != nil {
		return nil, err
	}
	release, err := fileutil.Lock(path)
	if err != nil {
		return nil, fmt.Errorf("lock output %s: %w", path, err)
	}
	defer release()

	record := d.beginHistory(ctx, req.videoID, player.Title, track, path)
	result, err := d.client.DownloadTo(ctx, track, path, req.progress)
	if err != nil {
		d.finishHistory(ctx, record, err)
		return nil, err
	}
	d.completeHistory(ctx, record, result)

	return &downloadOutcome{
		videoID:  req.videoID,
		title:    player.Title,
		track:    track,
		path:     path,
		captions: result.Captions,
		bytes:    result.Bytes,
	}, nil
}

// stream downloads one caption track and writes the SubRip document to w.
// Streamed downloads are not recorded in history; there is no durable
// output path to point at.
func (d *downloader) stream(ctx context.Context, w io.Writer, req downloadRequest) (*downloadOutcome, error) {
	player, track, err := d.resolveTrack(ctx, req)
	if err != nil {
		return nil, err
	}
	parsed, err := d.client.Track(ctx, track)
	if err != nil {
		return nil, err
	}
	if err := captions.WriteSRT(ctx, w, parsed, req.progress); err != nil {
		return nil, err
	}
	return &downloadOutcome{
		videoID:  req.videoID,
		title:    player.Title,
		track:    track,
		captions: parsed.Len(),
	}, nil
}

// outputPath resolves where the SubRip file lands. An explicit path wins;
// otherwise the file is named after the video id, or the sanitized title
// when requested, inside the configured output directory.
func (d *downloader) outputPath(req downloadRequest, player *youtube.Player, track captions.TrackInfo) (string, error) {
	if req.outputPath != "" {
		return config.ExpandPath(req.outputPath)
	}
	base := req.videoID
	if req.useTitle || d.cfg.Output.UseTitle {
		if title := textutil.SanitizeFileName(player.Title); title != "" {
			base = title
		}
	}
	name := fmt.Sprintf("%s.%s.srt", base, textutil.SanitizeToken(track.Language.Code))
	return filepath.Join(d.cfg.Paths.OutputDir, name), nil
}

func (d *downloader) beginHistory(ctx context.Context, videoID, title string, track captions.TrackInfo, path string) *store.Download {
	if d.history == nil {
		return nil
	}
	record, err := d.history.Begin(ctx, store.BeginRequest{
		VideoID:    videoID,
		Title:      title,
		Language:   track.Language.Code,
		TrackKind:  track.Kind(),
		OutputPath: path,
	})
	if err != nil {
		d.logger.Warn("record download start", logging.Error(err))
		return nil
	}
	return record
}

func (d *downloader) completeHistory(ctx context.Context, record *store.Download, result captions.DownloadResult) {
	if d.history == nil || record == nil {
		return
	}
	if err := d.history.Complete(context.WithoutCancel(ctx), record.ID, result.Captions, result.Bytes); err != nil {
		d.logger.Warn("record download result", logging.Error(err))
	}
}

// finishHistory records a failed or canceled download. The write proceeds
// even when ctx itself is already canceled.
func (d *downloader) finishHistory(ctx context.Context, record *store.Download, cause error) {
	if d.history == nil || record == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	var err error
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		err = d.history.MarkCanceled(detached, record.ID)
	} else {
		err = d.history.Fail(detached, record.ID, cause.Error())
	}
	if err != nil {
		d.logger.Warn("record download result", logging.Error(err))
	}
}
