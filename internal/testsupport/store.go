package testsupport

import (
	"context"
	"testing"

	"ccget/internal/config"
	"ccget/internal/store"
)

// MustOpenStore opens a history store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// BeginDownload records a started download for tests using the provided store.
func BeginDownload(t testing.TB, st *store.Store, videoID, language string) *store.Download {
	t.Helper()

	download, err := st.Begin(context.Background(), store.BeginRequest{
		VideoID:    videoID,
		Language:   language,
		TrackKind:  "manual",
		OutputPath: videoID + "." + language + ".srt",
	})
	if err != nil {
		t.Fatalf("store.Begin: %v", err)
	}
	return download
}
