package captions

import "errors"

// ExtractManifest validates a player document's caption track catalog.
//
// Every record must carry a URL, a language code, and a language name. A
// record missing any of them fails the whole extraction with an
// *ExtractionError naming the field. An empty catalog is valid and yields an
// empty manifest.
func ExtractManifest(doc *PlayerDocument) (*Manifest, error) {
	if doc == nil {
		return nil, errors.New("captions: player document is nil")
	}
	tracks := make([]TrackInfo, 0, len(doc.Tracks))
	for i, record := range doc.Tracks {
		if record.URL == "" {
			return nil, &ExtractionError{Entity: "caption track", Index: i, Field: "url"}
		}
		if record.LanguageCode == "" {
			return nil, &ExtractionError{Entity: "caption track", Index: i, Field: "language code"}
		}
		if record.LanguageName == "" {
			return nil, &ExtractionError{Entity: "caption track", Index: i, Field: "language name"}
		}
		tracks = append(tracks, TrackInfo{
			URL: record.URL,
			Language: Language{
				Code: record.LanguageCode,
				Name: record.LanguageName,
			},
			AutoGenerated: record.AutoGenerated,
		})
	}
	return NewManifest(tracks), nil
}
