package captions

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Language identifies a caption track's language.
type Language struct {
	Code string
	Name string
}

func (l Language) String() string {
	return fmt.Sprintf("%s (%s)", l.Code, l.Name)
}

// TrackInfo describes one caption track available for a video.
type TrackInfo struct {
	URL           string
	Language      Language
	AutoGenerated bool
}

// Kind describes how the track was authored: "auto" for speech recognition,
// "manual" for human-authored captions.
func (t TrackInfo) Kind() string {
	if t.AutoGenerated {
		return "auto"
	}
	return "manual"
}

// Manifest is the validated caption track catalog of one video, in upstream
// order. It is immutable after construction.
type Manifest struct {
	tracks []TrackInfo
}

// NewManifest wraps tracks in a Manifest. The slice is copied so later
// mutation of the argument cannot reach the manifest.
func NewManifest(tracks []TrackInfo) *Manifest {
	return &Manifest{tracks: slices.Clone(tracks)}
}

// Tracks returns every track in manifest order.
func (m *Manifest) Tracks() []TrackInfo {
	return slices.Clone(m.tracks)
}

// Len returns the number of tracks in the manifest.
func (m *Manifest) Len() int {
	return len(m.tracks)
}

// FindLanguage returns the first track whose language code equals code,
// ignoring case.
func (m *Manifest) FindLanguage(code string) (TrackInfo, bool) {
	for _, track := range m.tracks {
		if strings.EqualFold(track.Language.Code, code) {
			return track, true
		}
	}
	return TrackInfo{}, false
}

// Manual returns the human-authored tracks in manifest order.
func (m *Manifest) Manual() []TrackInfo {
	return m.filter(false)
}

// AutoGenerated returns the speech-recognition tracks in manifest order.
func (m *Manifest) AutoGenerated() []TrackInfo {
	return m.filter(true)
}

func (m *Manifest) filter(auto bool) []TrackInfo {
	out := make([]TrackInfo, 0, len(m.tracks))
	for _, track := range m.tracks {
		if track.AutoGenerated == auto {
			out = append(out, track)
		}
	}
	return out
}

// CaptionPart is one timed fragment of a caption, offset relative to the
// caption it belongs to.
type CaptionPart struct {
	Text   string
	Offset time.Duration
}

// Caption is one display block of a caption track. Parts may be empty when
// the provider supplied no word-level timing.
type Caption struct {
	Text     string
	Offset   time.Duration
	Duration time.Duration
	Parts    []CaptionPart
}

// End returns the moment the caption leaves the screen.
func (c Caption) End() time.Duration {
	return c.Offset + c.Duration
}

// Track is the validated, ordered caption sequence of one track. It is
// immutable after construction.
type Track struct {
	captions []Caption
}

// NewTrack wraps captions in a Track. The slice is copied so later mutation
// of the argument cannot reach the track.
func NewTrack(captions []Caption) *Track {
	return &Track{captions: slices.Clone(captions)}
}

// Captions returns every caption in track order.
func (t *Track) Captions() []Caption {
	return slices.Clone(t.captions)
}

// Len returns the number of captions in the track.
func (t *Track) Len() int {
	return len(t.captions)
}
