package youtube

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const videoIDLength = 11

// ParseVideoID extracts the 11-character video identifier from raw user
// input: a bare identifier or any of the common URL shapes (watch?v=,
// youtu.be/, /shorts/, /embed/, /live/), with or without a scheme.
func ParseVideoID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("youtube: video reference is empty")
	}
	if isVideoID(trimmed) {
		return trimmed, nil
	}
	candidate := trimmed
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("youtube: parse video reference %q: %w", raw, err)
	}
	id := idFromURL(parsed)
	if !isVideoID(id) {
		return "", fmt.Errorf("youtube: no video id in %q", raw)
	}
	return id, nil
}

func idFromURL(u *url.URL) string {
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtu.be":
		return firstSegment(u.Path)
	case "youtube.com", "m.youtube.com", "music.youtube.com":
	default:
		return ""
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 2 {
		switch segments[0] {
		case "shorts", "embed", "live":
			return segments[1]
		}
	}
	return ""
}

func firstSegment(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

func isVideoID(s string) bool {
	if len(s) != videoIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
