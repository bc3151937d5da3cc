// Package captions turns provider caption documents into validated track
// manifests and SubRip subtitle files.
//
// The pipeline has three stages: ExtractManifest validates the catalog of
// available tracks from a player document, ParseTrack builds an ordered
// caption sequence from a track document, and WriteSRT serializes a parsed
// track. Client composes the stages over a Source implementation that
// fetches the upstream documents.
package captions
