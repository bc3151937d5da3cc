package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ccget/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("CCGET_OUTPUT_DIR", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantOutput := filepath.Join(tempHome, "Downloads", "captions")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	wantLogs := filepath.Join(tempHome, ".local", "share", "ccget", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	if cfg.Paths.DataDir != filepath.Join(tempHome, ".local", "share", "ccget") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.YouTube.ClientName != "ANDROID" {
		t.Fatalf("unexpected client name: %q", cfg.YouTube.ClientName)
	}
	if cfg.YouTube.RequestTimeout != 30 {
		t.Fatalf("unexpected request timeout: %d", cfg.YouTube.RequestTimeout)
	}
	if len(cfg.Captions.Languages) != 1 || cfg.Captions.Languages[0] != "en" {
		t.Fatalf("unexpected default languages: %v", cfg.Captions.Languages)
	}
	if !cfg.Captions.PreferManual {
		t.Fatal("expected manual tracks preferred by default")
	}
	if !cfg.Captions.FallbackAuto {
		t.Fatal("expected auto fallback enabled by default")
	}
	if cfg.Output.OverwriteExisting {
		t.Fatal("expected overwrite disabled by default")
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if cfg.HistoryDBPath() != filepath.Join(cfg.Paths.DataDir, "history.db") {
		t.Fatalf("unexpected history db path: %q", cfg.HistoryDBPath())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir, cfg.Paths.DataDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "ccget.toml")

	type payload struct {
		YouTube struct {
			BaseURL        string `toml:"base_url"`
			RequestTimeout int    `toml:"request_timeout"`
		} `toml:"youtube"`
		Captions struct {
			Languages    []string `toml:"languages"`
			PreferManual bool     `toml:"prefer_manual"`
		} `toml:"captions"`
		Output struct {
			OverwriteExisting bool `toml:"overwrite_existing"`
		} `toml:"output"`
	}
	custom := payload{}
	custom.YouTube.BaseURL = "https://example.com/youtube"
	custom.YouTube.RequestTimeout = 5
	custom.Captions.Languages = []string{"PT-BR", "en", "pt-br", " "}
	custom.Captions.PreferManual = false
	custom.Output.OverwriteExisting = true
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.YouTube.BaseURL != "https://example.com/youtube" {
		t.Fatalf("expected base url override, got %q", cfg.YouTube.BaseURL)
	}
	if cfg.YouTube.RequestTimeout != 5 {
		t.Fatalf("expected request timeout 5, got %d", cfg.YouTube.RequestTimeout)
	}
	want := []string{"pt-br", "en"}
	if len(cfg.Captions.Languages) != len(want) {
		t.Fatalf("expected normalized languages %v, got %v", want, cfg.Captions.Languages)
	}
	for i, lang := range want {
		if cfg.Captions.Languages[i] != lang {
			t.Fatalf("expected normalized languages %v, got %v", want, cfg.Captions.Languages)
		}
	}
	if cfg.Captions.PreferManual {
		t.Fatal("expected prefer_manual override to false")
	}
	if !cfg.Output.OverwriteExisting {
		t.Fatal("expected overwrite override to true")
	}
}

func TestOutputDirEnvFallback(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	outputDir := filepath.Join(tempHome, "elsewhere")
	t.Setenv("CCGET_OUTPUT_DIR", outputDir)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.OutputDir != outputDir {
		t.Fatalf("expected output dir from env, got %q", cfg.Paths.OutputDir)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "output_dir") {
		t.Fatalf("sample config missing output_dir: %s", contents)
	}

	// Validate it decodes
	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.YouTube.ClientName != "ANDROID" {
		t.Fatalf("expected sample client name ANDROID, got %q", cfg.YouTube.ClientName)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.YouTube.RequestTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive timeout")
	}

	cfg = config.Default()
	cfg.YouTube.BaseURL = "not-a-url"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for relative base url")
	}

	cfg = config.Default()
	cfg.Captions.Languages = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty languages")
	}

	cfg = config.Default()
	cfg.Captions.Languages = []string{"!!bad-tag!!"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for malformed language tag")
	}

	cfg = config.Default()
	cfg.Logging.Format = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestLoadRejectsInvalidLanguage(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "ccget.toml")
	body := "[captions]\nlanguages = [\"not a tag\"]\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected Load to reject invalid language tag")
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "ccget.toml")
	body := "[logging]\nformat = \"yaml\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected Load to reject unsupported log format")
	}
}
