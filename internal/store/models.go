package store

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a recorded download.
type Status string

const (
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

var allStatuses = []Status{
	StatusStarted,
	StatusCompleted,
	StatusFailed,
	StatusCanceled,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether the status reflects a finished download.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCanceled:
		return true
	default:
		return false
	}
}

// Download represents one recorded caption fetch.
type Download struct {
	ID           string
	VideoID      string
	Title        string
	Language     string
	TrackKind    string
	OutputPath   string
	Status       Status
	Captions     int
	Bytes        int64
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// Stats aggregates history counts per terminal state.
type Stats struct {
	Total      int
	Completed  int
	Failed     int
	Canceled   int
	InFlight   int
	TotalBytes int64
}
