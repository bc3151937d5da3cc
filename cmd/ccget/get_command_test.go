package main

import (
	"os"
	"path/filepath"
	"testing"

	"ccget/internal/testsupport"
)

func TestGetCommandDownloadsToOutputDir(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run(t, "get", "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	path := filepath.Join(env.outputDir, "dQw4w9WgXcQ.en.srt")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	if string(content) != goldenSRT {
		t.Fatalf("unexpected file content:\ngot  %q\nwant %q", content, goldenSRT)
	}
	requireContains(t, stdout, "Saved en (English) captions")
	requireContains(t, stdout, path)
	requireContains(t, stdout, "2 captions")
}

func TestGetCommandWritesStdout(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run(t, "get", "dQw4w9WgXcQ", "-o", "-")
	if err != nil {
		t.Fatalf("get -o - failed: %v", err)
	}
	if stdout != goldenSRT {
		t.Fatalf("stdout is not the bare SubRip document:\ngot  %q\nwant %q", stdout, goldenSRT)
	}
}

func TestGetCommandExplicitOutputPath(t *testing.T) {
	env := newCLIEnv(t)
	target := filepath.Join(t.TempDir(), "nested", "subs.srt")

	_, _, err := env.run(t, "get", "dQw4w9WgXcQ", "-o", target)
	if err != nil {
		t.Fatalf("get -o failed: %v", err)
	}
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	if string(content) != goldenSRT {
		t.Fatalf("unexpected file content: %q", content)
	}
}

func TestGetCommandRefusesExistingOutput(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(env.outputDir, "dQw4w9WgXcQ.en.srt")
	testsupport.WriteFile(t, path, 16)

	_, _, err := env.run(t, "get", "dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("expected an error when the output file exists")
	}
	requireContains(t, err.Error(), "already exists")

	if _, _, err := env.run(t, "get", "dQw4w9WgXcQ", "--overwrite"); err != nil {
		t.Fatalf("get --overwrite failed: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	if string(content) != goldenSRT {
		t.Fatalf("overwrite left stale content: %q", content)
	}
}

func TestGetCommandFallsBackToAutoTrack(t *testing.T) {
	env := newCLIEnv(t)

	stdout, _, err := env.run(t, "get", "dQw4w9WgXcQ", "-l", "es")
	if err != nil {
		t.Fatalf("get -l es failed: %v", err)
	}
	requireContains(t, stdout, "Saved es")

	if _, err := os.Stat(filepath.Join(env.outputDir, "dQw4w9WgXcQ.es.srt")); err != nil {
		t.Fatalf("expected es output file: %v", err)
	}
}

func TestGetCommandManualOnlyExcludesAutoTracks(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "get", "dQw4w9WgXcQ", "-l", "es", "--manual")
	if err == nil {
		t.Fatal("expected an error when only an auto track matches")
	}
	requireContains(t, err.Error(), "no es captions")
}

func TestGetCommandAutoAndManualFlagsConflict(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "get", "dQw4w9WgXcQ", "--auto", "--manual")
	if err == nil {
		t.Fatal("expected an error for conflicting flags")
	}
	requireContains(t, err.Error(), "mutually exclusive")
}

func TestGetCommandUseTitleNamesFile(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "get", "dQw4w9WgXcQ", "--use-title")
	if err != nil {
		t.Fatalf("get --use-title failed: %v", err)
	}
	path := filepath.Join(env.outputDir, "Never Gonna Give You Up.en.srt")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected title-named output file: %v", err)
	}
}
