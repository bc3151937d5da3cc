package captions

import (
	"errors"
	"fmt"
	"time"
)

// ParseTrack builds the validated caption sequence from a track document.
//
// Records without display text are dropped; whitespace-only text counts as
// text. Records missing an offset or a duration are dropped too, a known
// provider quirk for timing-less metadata events. Both skips are local: the
// surrounding captions still parse. Parts are stricter: a surviving part
// missing its offset fails the whole parse with an *ExtractionError.
func ParseTrack(doc *TrackDocument) (*Track, error) {
	if doc == nil {
		return nil, errors.New("captions: track document is nil")
	}
	captions := make([]Caption, 0, len(doc.Captions))
	for i, record := range doc.Captions {
		if record.Text == "" {
			continue
		}
		if record.OffsetMs == nil || record.DurationMs == nil {
			continue
		}
		parts, err := parseParts(record.Parts)
		if err != nil {
			return nil, fmt.Errorf("caption %d: %w", i, err)
		}
		captions = append(captions, Caption{
			Text:     record.Text,
			Offset:   time.Duration(*record.OffsetMs) * time.Millisecond,
			Duration: time.Duration(*record.DurationMs) * time.Millisecond,
			Parts:    parts,
		})
	}
	return NewTrack(captions), nil
}

func parseParts(records []PartRecord) ([]CaptionPart, error) {
	if len(records) == 0 {
		return nil, nil
	}
	parts := make([]CaptionPart, 0, len(records))
	for i, record := range records {
		if record.Text == "" {
			continue
		}
		if record.OffsetMs == nil {
			return nil, &ExtractionError{Entity: "caption part", Index: i, Field: "offset"}
		}
		parts = append(parts, CaptionPart{
			Text:   record.Text,
			Offset: time.Duration(*record.OffsetMs) * time.Millisecond,
		})
	}
	return parts, nil
}
