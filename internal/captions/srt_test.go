package captions_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ccget/internal/captions"
)

func twoCaptionTrack() *captions.Track {
	return captions.NewTrack([]captions.Caption{
		{Text: "Hello", Offset: 0, Duration: time.Second},
		{Text: "World", Offset: 61*time.Second + 500*time.Millisecond, Duration: 2 * time.Second},
	})
}

func TestWriteSRTFormatsBlocks(t *testing.T) {
	var buf bytes.Buffer
	if err := captions.WriteSRT(context.Background(), &buf, twoCaptionTrack(), nil); err != nil {
		t.Fatalf("WriteSRT returned error: %v", err)
	}

	want := "1\n" +
		"00:00:00,000 --> 00:00:01,000\n" +
		"Hello\n" +
		"\n" +
		"2\n" +
		"00:01:01,500 --> 00:01:03,500\n" +
		"World\n" +
		"\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestWriteSRTTruncatesTimecodes(t *testing.T) {
	track := captions.NewTrack([]captions.Caption{
		{
			Text:     "precise",
			Offset:   time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond + 999*time.Microsecond,
			Duration: time.Second + 500*time.Microsecond,
		},
	})

	var buf bytes.Buffer
	if err := captions.WriteSRT(context.Background(), &buf, track, nil); err != nil {
		t.Fatalf("WriteSRT returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "01:02:03,004 --> 01:02:04,005") {
		t.Fatalf("expected truncated timecodes, got %q", buf.String())
	}
}

func TestWriteSRTReportsProgress(t *testing.T) {
	var fractions []float64
	err := captions.WriteSRT(context.Background(), &bytes.Buffer{}, twoCaptionTrack(), func(f float64) {
		fractions = append(fractions, f)
	})
	if err != nil {
		t.Fatalf("WriteSRT returned error: %v", err)
	}
	if len(fractions) != 2 {
		t.Fatalf("progress calls = %d, want 2", len(fractions))
	}
	if fractions[0] != 0.5 || fractions[1] != 1.0 {
		t.Fatalf("progress fractions = %v, want [0.5 1]", fractions)
	}
}

func TestWriteSRTCancellationLeavesCompletePrefix(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf bytes.Buffer
	err := captions.WriteSRT(ctx, &buf, twoCaptionTrack(), func(f float64) {
		if f == 0.5 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	want := "1\n00:00:00,000 --> 00:00:01,000\nHello\n\n"
	if buf.String() != want {
		t.Fatalf("expected exactly one complete block:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestWriteSRTEmptyTrack(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	err := captions.WriteSRT(context.Background(), &buf, captions.NewTrack(nil), func(float64) {
		calls++
	})
	if err != nil {
		t.Fatalf("WriteSRT returned error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q", buf.String())
	}
	if calls != 0 {
		t.Fatalf("progress calls = %d, want 0", calls)
	}
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write([]byte) (int, error) {
	return 0, w.err
}

func TestWriteSRTPropagatesSinkError(t *testing.T) {
	sinkErr := errors.New("sink failed")
	err := captions.WriteSRT(context.Background(), failingWriter{err: sinkErr}, twoCaptionTrack(), nil)
	if !errors.Is(err, sinkErr) {
		t.Fatalf("expected wrapped sink error, got %v", err)
	}
}
