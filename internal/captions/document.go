package captions

// PlayerDocument is the loosely-typed track catalog lifted from a provider
// player response. Sources populate it verbatim; validation happens in
// ExtractManifest.
type PlayerDocument struct {
	Tracks []TrackRecord
}

// TrackRecord is one raw catalog entry. Empty strings mean the provider
// omitted the field. AutoGenerated follows the provider's default of false
// when the field is absent.
type TrackRecord struct {
	URL           string
	LanguageCode  string
	LanguageName  string
	AutoGenerated bool
}

// TrackDocument is the loosely-typed caption payload for a single track.
type TrackDocument struct {
	Captions []CaptionRecord
}

// CaptionRecord is one raw caption entry. Nil timing pointers mean the
// provider omitted the field; text is stored verbatim, including whitespace.
type CaptionRecord struct {
	Text       string
	OffsetMs   *int64
	DurationMs *int64
	Parts      []PartRecord
}

// PartRecord is one raw caption fragment with word-level timing. The offset
// is relative to the enclosing caption.
type PartRecord struct {
	Text     string
	OffsetMs *int64
}
