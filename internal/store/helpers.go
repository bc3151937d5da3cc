package store

import (
	"database/sql"
	"errors"
	"time"
)

const downloadColumns = "id, video_id, title, language, track_kind, output_path, status, captions, bytes, error_message, started_at, finished_at"

func scanDownload(scanner interface{ Scan(dest ...any) error }) (*Download, error) {
	var (
		id           string
		videoID      string
		title        sql.NullString
		language     string
		trackKind    sql.NullString
		outputPath   string
		statusStr    string
		captionCount sql.NullInt64
		bytes        sql.NullInt64
		errorMessage sql.NullString
		startedRaw   sql.NullString
		finishedRaw  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&videoID,
		&title,
		&language,
		&trackKind,
		&outputPath,
		&statusStr,
		&captionCount,
		&bytes,
		&errorMessage,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}

	download := &Download{
		ID:           id,
		VideoID:      videoID,
		Title:        title.String,
		Language:     language,
		TrackKind:    trackKind.String,
		OutputPath:   outputPath,
		Status:       Status(statusStr),
		Captions:     int(captionCount.Int64),
		Bytes:        bytes.Int64,
		ErrorMessage: errorMessage.String,
	}

	if started, err := parseTimeString(startedRaw.String); err == nil {
		download.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			download.FinishedAt = &finished
		}
	}
	return download, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
