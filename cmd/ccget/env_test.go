package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// goldenSRT is what the canned timedtext payload serializes to.
const goldenSRT = "1\n" +
	"00:00:00,000 --> 00:00:01,000\n" +
	"Hello\n" +
	"\n" +
	"2\n" +
	"00:01:01,500 --> 00:01:03,500\n" +
	"World\n" +
	"\n"

// cliEnv bundles a fake player endpoint with a config file pointing every
// path at a temp directory.
type cliEnv struct {
	configPath string
	outputDir  string
	dataDir    string
	server     *httptest.Server
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	base := t.TempDir()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/youtubei/v1/player":
			writePlayerResponse(t, w, server.URL)
		case strings.HasPrefix(r.URL.Path, "/api/timedtext"):
			writeTimedtextResponse(t, w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	outputDir := filepath.Join(base, "captions")
	dataDir := filepath.Join(base, "data")
	contents := fmt.Sprintf(`[paths]
output_dir = %q
log_dir = %q
data_dir = %q

[youtube]
base_url = %q

[captions]
languages = ["en"]
prefer_manual = true
fallback_auto = true

[logging]
level = "error"
`, outputDir, filepath.Join(base, "logs"), dataDir, server.URL)

	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliEnv{configPath: configPath, outputDir: outputDir, dataDir: dataDir, server: server}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	full := append([]string{"--config", e.configPath}, args...)
	return runCLI(t, full...)
}

func appendToConfig(t *testing.T, path, extra string) {
	t.Helper()
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open config: %v", err)
	}
	defer file.Close()
	if _, err := file.WriteString(extra); err != nil {
		t.Fatalf("append config: %v", err)
	}
}

func writePlayerResponse(t *testing.T, w http.ResponseWriter, baseURL string) {
	t.Helper()
	payload := map[string]any{
		"playabilityStatus": map[string]any{"status": "OK"},
		"videoDetails": map[string]any{
			"videoId":       "dQw4w9WgXcQ",
			"title":         "Never Gonna Give You Up",
			"author":        "Rick Astley",
			"lengthSeconds": "212",
		},
		"captions": map[string]any{
			"playerCaptionsTracklistRenderer": map[string]any{
				"captionTracks": []map[string]any{
					{
						"baseUrl":      baseURL + "/api/timedtext?lang=en&v=dQw4w9WgXcQ",
						"name":         map[string]any{"simpleText": "English"},
						"languageCode": "en",
					},
					{
						"baseUrl":      baseURL + "/api/timedtext?lang=es&v=dQw4w9WgXcQ",
						"name":         map[string]any{"runs": []map[string]any{{"text": "Spanish (auto-generated)"}}},
						"languageCode": "es",
						"kind":         "asr",
					},
				},
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Errorf("encode player response: %v", err)
	}
}

func writeTimedtextResponse(t *testing.T, w http.ResponseWriter, r *http.Request) {
	t.Helper()
	if got := r.URL.Query().Get("fmt"); got != "json3" {
		t.Errorf("timedtext fmt = %q, want json3", got)
	}
	payload := map[string]any{
		"events": []map[string]any{
			{"tStartMs": 0, "dDurationMs": 1000, "segs": []map[string]any{{"utf8": "Hello"}}},
			{"tStartMs": 61500, "dDurationMs": 2000, "segs": []map[string]any{{"utf8": "World"}}},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Errorf("encode timedtext response: %v", err)
	}
}
