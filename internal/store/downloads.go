package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultRecentLimit = 20

// BeginRequest describes a download about to start.
type BeginRequest struct {
	VideoID    string
	Title      string
	Language   string
	TrackKind  string
	OutputPath string
}

// Begin records a download in the started state and returns the stored row.
func (s *Store) Begin(ctx context.Context, req BeginRequest) (*Download, error) {
	if strings.TrimSpace(req.VideoID) == "" {
		return nil, errors.New("video id is required")
	}
	if strings.TrimSpace(req.Language) == "" {
		return nil, errors.New("language is required")
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return nil, errors.New("output path is required")
	}

	id := uuid.NewString()
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	if _, err := s.execWithRetry(
		ctx,
		`INSERT INTO downloads (
            id, video_id, title, language, track_kind, output_path,
            status, started_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		req.VideoID,
		nullableString(req.Title),
		req.Language,
		req.TrackKind,
		req.OutputPath,
		StatusStarted,
		timestamp,
	); err != nil {
		return nil, fmt.Errorf("insert download: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Complete marks a download as finished and records what was written.
func (s *Store) Complete(ctx context.Context, id string, captionCount int, bytes int64) error {
	return s.finish(ctx, id, StatusCompleted, captionCount, bytes, "")
}

// Fail marks a download as failed with the given error message.
func (s *Store) Fail(ctx context.Context, id, message string) error {
	return s.finish(ctx, id, StatusFailed, 0, 0, message)
}

// MarkCanceled marks a download as canceled by the user.
func (s *Store) MarkCanceled(ctx context.Context, id string) error {
	return s.finish(ctx, id, StatusCanceled, 0, 0, "")
}

func (s *Store) finish(ctx context.Context, id string, status Status, captionCount int, bytes int64, message string) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(
		ctx,
		`UPDATE downloads
         SET status = ?, captions = ?, bytes = ?, error_message = ?, finished_at = ?
         WHERE id = ?`,
		status,
		captionCount,
		bytes,
		nullableString(message),
		timestamp,
		id,
	)
	if err != nil {
		return fmt.Errorf("finish download: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish download: unknown id %s", id)
	}
	return nil
}

// GetByID fetches a download record by identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*Download, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+downloadColumns+` FROM downloads WHERE id = ?`, id)
	download, err := scanDownload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get download: %w", err)
	}
	return download, nil
}

// Recent returns the most recently started downloads, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Download, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+downloadColumns+` FROM downloads ORDER BY started_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent downloads: %w", err)
	}
	defer rows.Close()
	return collectDownloads(rows)
}

// ByVideo returns every recorded download for one video, newest first.
func (s *Store) ByVideo(ctx context.Context, videoID string) ([]*Download, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+downloadColumns+` FROM downloads WHERE video_id = ? ORDER BY started_at DESC, id`,
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("query downloads by video: %w", err)
	}
	defer rows.Close()
	return collectDownloads(rows)
}

// ByStatus returns the most recently started downloads in the given state,
// newest first.
func (s *Store) ByStatus(ctx context.Context, status Status, limit int) ([]*Download, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+downloadColumns+` FROM downloads WHERE status = ? ORDER BY started_at DESC, id LIMIT ?`,
		string(status),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query downloads by status: %w", err)
	}
	defer rows.Close()
	return collectDownloads(rows)
}

// Stats aggregates history counts and total bytes written.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT status, COUNT(1), COALESCE(SUM(bytes), 0) FROM downloads GROUP BY status`,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("query download stats: %w", err)
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var (
			statusStr string
			count     int
			bytes     int64
		)
		if err := rows.Scan(&statusStr, &count, &bytes); err != nil {
			return Stats{}, fmt.Errorf("scan stats row: %w", err)
		}
		stats.Total += count
		stats.TotalBytes += bytes
		switch Status(statusStr) {
		case StatusCompleted:
			stats.Completed = count
		case StatusFailed:
			stats.Failed = count
		case StatusCanceled:
			stats.Canceled = count
		case StatusStarted:
			stats.InFlight = count
		}
	}
	return stats, rows.Err()
}

// Clear removes all history records.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM downloads`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}

func collectDownloads(rows *sql.Rows) ([]*Download, error) {
	var downloads []*Download
	for rows.Next() {
		download, err := scanDownload(rows)
		if err != nil {
			return nil, err
		}
		downloads = append(downloads, download)
	}
	return downloads, rows.Err()
}
