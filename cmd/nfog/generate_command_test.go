package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateWritesDescription(t *testing.T) {
	env := setupCLITestEnv(t)
	media := filepath.Join(env.baseDir, "media", "Example.2020.1080p.mkv")

	out, _, err := runCLI(t, env, "generate", "Movie", media, "tt0487831", "--source", "BluRay", "--artwork", "none")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	requireContains(t, out, "Generated NFO for Example.2020.1080p")

	target := filepath.Join(env.baseDir, "media", "Example.2020.1080p.nfo")
	requireContains(t, out, target)
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	requireContains(t, string(data), "BluRay")

	if _, _, err := runCLI(t, env, "generate", "Movie", media, "tt0487831"); err == nil {
		t.Fatal("expected second run without --overwrite to fail")
	}
	if _, _, err := runCLI(t, env, "generate", "Movie", media, "tt0487831", "--overwrite"); err != nil {
		t.Fatalf("generate --overwrite: %v", err)
	}
}

func TestGenerateStdoutUsesTaggedID(t *testing.T) {
	env := setupCLITestEnv(t)
	media := filepath.Join(env.baseDir, "Example.mkv")

	out, _, err := runCLI(t, env, "generate", "bbcode/Movie", media, "-", "--stdout", "--artwork", "Framed")
	if err != nil {
		t.Fatalf("generate --stdout: %v", err)
	}
	requireContains(t, out, "[align=center]")
	requireContains(t, out, "2024.05.01 12:00")
	if len(env.catalog.queries) != 1 || env.catalog.queries[0].IDs.IMDb != "tt0487831" {
		t.Fatalf("unexpected catalog queries: %+v", env.catalog.queries)
	}
	if entries, _ := os.ReadDir(env.baseDir); containsFile(entries, "Example.txt") {
		t.Fatal("--stdout should not write a file")
	}
}

func TestGenerateUserArtworkAndEncoding(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.MkdirAll(env.artworkDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(env.artworkDir, "Boxes.txt"), []byte("╔══╗\n╚══╝\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	media := filepath.Join(env.baseDir, "Example.mkv")

	if _, _, err := runCLI(t, env, "generate", "Movie", media, "tt0487831", "--artwork", "boxes", "--encoding", "cp437"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(env.baseDir, "Example.nfo"))
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	if data[0] != 0xC9 {
		t.Fatalf("expected cp437 box corner as first byte, got %#x", data[0])
	}
}

func TestGenerateArgumentErrors(t *testing.T) {
	env := setupCLITestEnv(t)
	media := filepath.Join(env.baseDir, "Show.S01E01.mkv")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown template", []string{"generate", "Nope", media, "tt0487831"}, "unknown template"},
		{"bad season", []string{"generate", "Season", media, "tt0487831", "x"}, "season must be a positive number"},
		{"missing episode", []string{"generate", "Episode", media, "tt0487831", "1"}, "season and episode numbers"},
		{"no default template", []string{"generate", "-", media, "tt0487831"}, "defaults.template"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, env, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestInspectListsTracks(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env, "inspect", filepath.Join(env.baseDir, "Example.mkv"))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Video")
	requireContains(t, out, "English")
	requireContains(t, out, "Opening")
	requireContains(t, out, "imdb=tt0487831")
}

func containsFile(entries []os.DirEntry, name string) bool {
	for _, e := range entries {
		if e.Name() == name {
			return true
		}
	}
	return false
}
