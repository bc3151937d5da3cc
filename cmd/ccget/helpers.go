package main

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ccget/internal/captions"
	"ccget/internal/config"
	"ccget/internal/language"
	"ccget/internal/youtube"
)

func newYouTubeClient(cfg *config.Config, logger *slog.Logger) (*youtube.Client, error) {
	timeout := time.Duration(cfg.YouTube.RequestTimeout) * time.Second
	if cfg.YouTube.RequestTimeout <= 0 {
		timeout = 30 * time.Second
	}
	return youtube.New(youtube.Config{
		BaseURL:       cfg.YouTube.BaseURL,
		ClientName:    cfg.YouTube.ClientName,
		ClientVersion: cfg.YouTube.ClientVersion,
		UserAgent:     cfg.YouTube.UserAgent,
		HTTPClient:    &http.Client{Timeout: timeout},
		Logger:        logger,
	})
}

// trackSelection captures the track-picking flags shared by get and batch.
type trackSelection struct {
	languages  []string
	autoOnly   bool
	manualOnly bool
}

func (s trackSelection) validate() error {
	if s.autoOnly && s.manualOnly {
		return errors.New("--auto and --manual are mutually exclusive")
	}
	return nil
}

// pick selects one track from the manifest. Flag values override the
// configured preference; --auto restricts the catalog to auto-generated
// tracks and --manual excludes them.
func (s trackSelection) pick(cfg *config.Config, manifest *captions.Manifest) (captions.TrackInfo, error) {
	languages := s.languages
	if len(languages) == 0 {
		languages = cfg.Captions.Languages
	}

	pref := language.Preference{
		Languages:    languages,
		PreferManual: cfg.Captions.PreferManual,
		FallbackAuto: cfg.Captions.FallbackAuto,
	}
	switch {
	case s.autoOnly:
		manifest = captions.NewManifest(manifest.AutoGenerated())
		pref.PreferManual = false
		pref.FallbackAuto = true
	case s.manualOnly:
		pref.PreferManual = false
		pref.FallbackAuto = false
	}

	return language.Select(manifest, pref)
}
