package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"ccget/internal/captions"
	"ccget/internal/logging"
)

// TrackDocument fetches one caption track in the json3 timedtext format and
// maps it onto the raw captions document. The format flag on the track URL is
// rewritten to json3 regardless of what the catalog advertised.
//
// Events without timing fields are mapped with nil pointers so the captions
// parser can apply its skip rules. Segment offsets use the format's
// absent-means-zero default; that default is resolved here, at the wire
// boundary.
func (c *Client) TrackDocument(ctx context.Context, trackURL string) (*captions.TrackDocument, error) {
	if c == nil {
		return nil, errors.New("youtube: client is nil")
	}
	trackURL = strings.TrimSpace(trackURL)
	if trackURL == "" {
		return nil, errors.New("youtube: track url is required")
	}
	parsed, err := url.Parse(trackURL)
	if err != nil {
		return nil, fmt.Errorf("youtube: parse track url: %w", err)
	}
	query := parsed.Query()
	query.Set("fmt", "json3")
	parsed.RawQuery = query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("youtube: build track request: %w", err)
	}
	c.applyHeaders(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("youtube: track request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("youtube: track fetch failed (%s): %s", resp.Status, strings.TrimSpace(string(errBody)))
	}

	var decoded timedtextResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("youtube: decode track response: %w", err)
	}

	records := make([]captions.CaptionRecord, 0, len(decoded.Events))
	for _, event := range decoded.Events {
		record := captions.CaptionRecord{
			Text:       event.text(),
			OffsetMs:   event.TStartMs,
			DurationMs: event.DDurationMs,
		}
		if len(event.Segs) > 1 {
			parts := make([]captions.PartRecord, 0, len(event.Segs))
			for _, seg := range event.Segs {
				parts = append(parts, captions.PartRecord{Text: seg.UTF8, OffsetMs: seg.offset()})
			}
			record.Parts = parts
		}
		records = append(records, record)
	}
	c.logger.Debug("track document fetched", logging.Int("events", len(records)))
	return &captions.TrackDocument{Captions: records}, nil
}

type timedtextResponse struct {
	WireMagic string       `json:"wireMagic"`
	Events    []timedEvent `json:"events"`
}

type timedEvent struct {
	TStartMs    *int64     `json:"tStartMs"`
	DDurationMs *int64     `json:"dDurationMs"`
	Segs        []timedSeg `json:"segs"`
}

type timedSeg struct {
	UTF8      string `json:"utf8"`
	TOffsetMs *int64 `json:"tOffsetMs"`
}

func (e timedEvent) text() string {
	if len(e.Segs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range e.Segs {
		b.WriteString(seg.UTF8)
	}
	return b.String()
}

// offset reports the segment offset, substituting zero when the wire format
// omitted the field for the leading segment.
func (s timedSeg) offset() *int64 {
	if s.TOffsetMs != nil {
		return s.TOffsetMs
	}
	zero := int64(0)
	return &zero
}
