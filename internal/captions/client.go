package captions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"ccget/internal/logging"
)

// Source supplies the upstream documents the caption pipeline consumes.
// Implementations fetch and decode provider payloads; the pipeline owns
// validation and serialization. Fetch failures are surfaced to callers
// unchanged.
type Source interface {
	PlayerDocument(ctx context.Context, videoID string) (*PlayerDocument, error)
	TrackDocument(ctx context.Context, trackURL string) (*TrackDocument, error)
}

// Client composes the caption pipeline stages over a Source.
type Client struct {
	source Source
	logger *slog.Logger
}

// NewClient creates a Client around the given source. A nil logger disables
// logging.
func NewClient(source Source, logger *slog.Logger) *Client {
	return &Client{
		source: source,
		logger: logging.NewComponentLogger(logger, "captions"),
	}
}

// Manifest fetches the player document for videoID and extracts its caption
// track catalog.
func (c *Client) Manifest(ctx context.Context, videoID string) (*Manifest, error) {
	if c == nil || c.source == nil {
		return nil, errors.New("captions: client source is nil")
	}
	doc, err := c.source.PlayerDocument(ctx, videoID)
	if err != nil {
		return nil, err
	}
	manifest, err := ExtractManifest(doc)
	if err != nil {
		return nil, fmt.Errorf("video %s: %w", videoID, err)
	}
	c.logger.Debug("caption manifest extracted",
		logging.String(logging.FieldVideoID, videoID),
		logging.Int("tracks", manifest.Len()))
	return manifest, nil
}

// Track fetches and parses the caption track described by info.
func (c *Client) Track(ctx context.Context, info TrackInfo) (*Track, error) {
	if c == nil || c.source == nil {
		return nil, errors.New("captions: client source is nil")
	}
	doc, err := c.source.TrackDocument(ctx, info.URL)
	if err != nil {
		return nil, err
	}
	track, err := ParseTrack(doc)
	if err != nil {
		return nil, fmt.Errorf("track %s: %w", info.Language.Code, err)
	}
	c.logger.Debug("caption track parsed",
		logging.String(logging.FieldLanguage, info.Language.Code),
		logging.Int("captions", track.Len()))
	return track, nil
}

// DownloadResult describes a completed caption download.
type DownloadResult struct {
	Path     string
	Captions int
	Bytes    int64
}

// DownloadTo fetches the caption track described by info and writes it to
// path as SubRip.
//
// The file is created, or truncated when it already exists, before the first
// block goes out, and the handle is released on every path. On error or
// cancellation the blocks written so far remain in place; callers that need
// atomic output should write to a temporary path and rename.
func (c *Client) DownloadTo(ctx context.Context, info TrackInfo, path string, progress ProgressFunc) (DownloadResult, error) {
	track, err := c.Track(ctx, info)
	if err != nil {
		return DownloadResult{}, err
	}

	file, err := os.Create(path)
	if err != nil {
		return DownloadResult{}, fmt.Errorf("create %s: %w", path, err)
	}

	counted := &countingWriter{w: file}
	started := time.Now()
	writeErr := WriteSRT(ctx, counted, track, progress)
	if closeErr := file.Close(); writeErr == nil && closeErr != nil {
		writeErr = fmt.Errorf("close %s: %w", path, closeErr)
	}
	if writeErr != nil {
		return DownloadResult{}, writeErr
	}

	c.logger.Info("caption track downloaded",
		logging.String(logging.FieldLanguage, info.Language.Code),
		logging.String(logging.FieldTrackKind, info.Kind()),
		logging.String(logging.FieldOutput, path),
		logging.Int("captions", track.Len()),
		logging.Int64("bytes", counted.n),
		logging.Duration("elapsed", time.Since(started)))
	return DownloadResult{Path: path, Captions: track.Len(), Bytes: counted.n}, nil
}

// countingWriter counts bytes while forwarding each Write unchanged; block
// boundaries on the underlying file match the serializer's writes.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
