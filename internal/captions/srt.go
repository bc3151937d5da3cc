package captions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ProgressFunc observes serialization progress. It receives the fraction of
// caption blocks written so far, in (0, 1].
type ProgressFunc func(fraction float64)

// WriteSRT serializes track to w in SubRip format.
//
// Blocks are written in track order with 1-based indices. The context is
// checked before each block, so a cancelled serialization stops between
// blocks and everything already written remains a valid SubRip prefix.
// progress, when non-nil, is invoked synchronously after each block. Sink
// write errors abort the serialization and are returned wrapped.
func WriteSRT(ctx context.Context, w io.Writer, track *Track, progress ProgressFunc) error {
	if track == nil {
		return errors.New("captions: track is nil")
	}
	total := track.Len()
	for i, caption := range track.captions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1, formatTimecode(caption.Offset), formatTimecode(caption.End()), caption.Text); err != nil {
			return fmt.Errorf("write caption %d: %w", i+1, err)
		}
		if progress != nil {
			progress(float64(i+1) / float64(total))
		}
	}
	return nil
}

// formatTimecode renders a duration as an SRT timecode (HH:MM:SS,mmm with a
// comma before the milliseconds). Sub-millisecond precision is truncated,
// never rounded.
func formatTimecode(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d,%03d",
		ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}
