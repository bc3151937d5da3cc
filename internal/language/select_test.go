package language_test

import (
	"strings"
	"testing"

	"ccget/internal/captions"
	"ccget/internal/language"
)

func track(code, name string, auto bool) captions.TrackInfo {
	return captions.TrackInfo{
		URL:           "https://example.com/timedtext?lang=" + code,
		Language:      captions.Language{Code: code, Name: name},
		AutoGenerated: auto,
	}
}

func sampleManifest() *captions.Manifest {
	return captions.NewManifest([]captions.TrackInfo{
		track("en", "English", false),
		track("en", "English (auto-generated)", true),
		track("pt-BR", "Portuguese (Brazil)", false),
		track("es", "Spanish (auto-generated)", true),
	})
}

func TestSelectExactCodePrefersManual(t *testing.T) {
	got, err := language.Select(sampleManifest(), language.Preference{
		Languages:    []string{"en"},
		PreferManual: true,
		FallbackAuto: true,
	})
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if got.AutoGenerated || got.Language.Code != "en" {
		t.Fatalf("expected manual en track, got %+v", got)
	}
}

func TestSelectMatchesRegionalVariant(t *testing.T) {
	got, err := language.Select(sampleManifest(), language.Preference{
		Languages:    []string{"pt"},
		PreferManual: true,
		FallbackAuto: true,
	})
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if got.Language.Code != "pt-BR" {
		t.Fatalf("expected pt-BR track for pt preference, got %+v", got)
	}
}

func TestSelectFallsBackToAutoGenerated(t *testing.T) {
	got, err := language.Select(sampleManifest(), language.Preference{
		Languages:    []string{"es"},
		PreferManual: true,
		FallbackAuto: true,
	})
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if !got.AutoGenerated || got.Language.Code != "es" {
		t.Fatalf("expected auto es track, got %+v", got)
	}
}

func TestSelectExcludesAutoWhenFallbackDisabled(t *testing.T) {
	_, err := language.Select(sampleManifest(), language.Preference{
		Languages:    []string{"es"},
		PreferManual: true,
		FallbackAuto: false,
	})
	if err == nil {
		t.Fatal("expected error when only auto track exists and fallback is off")
	}
}

func TestSelectTriesPreferencesInOrder(t *testing.T) {
	got, err := language.Select(sampleManifest(), language.Preference{
		Languages:    []string{"ja", "es"},
		PreferManual: true,
		FallbackAuto: true,
	})
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if got.Language.Code != "es" {
		t.Fatalf("expected second preference es, got %+v", got)
	}
}

func TestSelectManualPoolBeatsEarlierAutoTrack(t *testing.T) {
	manifest := captions.NewManifest([]captions.TrackInfo{
		track("en", "English (auto-generated)", true),
		track("en", "English", false),
	})

	got, err := language.Select(manifest, language.Preference{
		Languages:    []string{"en"},
		PreferManual: true,
		FallbackAuto: true,
	})
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if got.AutoGenerated {
		t.Fatalf("expected manual track to win, got %+v", got)
	}

	got, err = language.Select(manifest, language.Preference{
		Languages:    []string{"en"},
		PreferManual: false,
		FallbackAuto: true,
	})
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if !got.AutoGenerated {
		t.Fatalf("expected catalog order to win without manual preference, got %+v", got)
	}
}

func TestSelectErrorListsAvailableTracks(t *testing.T) {
	_, err := language.Select(sampleManifest(), language.Preference{
		Languages:    []string{"ko"},
		PreferManual: true,
		FallbackAuto: true,
	})
	if err == nil {
		t.Fatal("expected error for unavailable language")
	}
	for _, want := range []string{"ko", "en", "pt-BR", "es (auto)"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestSelectEmptyManifest(t *testing.T) {
	_, err := language.Select(captions.NewManifest(nil), language.Preference{
		Languages:    []string{"en"},
		FallbackAuto: true,
	})
	if err == nil {
		t.Fatal("expected error for empty manifest")
	}
}

func TestSelectRequiresPreferences(t *testing.T) {
	_, err := language.Select(sampleManifest(), language.Preference{})
	if err == nil {
		t.Fatal("expected error when no languages configured")
	}
}
