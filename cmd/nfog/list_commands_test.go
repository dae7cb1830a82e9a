package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTemplatesCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env, "templates")
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	for _, name := range []string{"Movie", "Season", "Episode", "bbcode/Movie", ".nfo", ".txt"} {
		requireContains(t, out, name)
	}
}

func TestArtworkCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.MkdirAll(env.artworkDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(env.artworkDir, "Mine.txt"), []byte("art\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, env, "artwork")
	if err != nil {
		t.Fatalf("artwork: %v", err)
	}
	requireContains(t, out, "Classic")
	requireContains(t, out, "Framed")
	requireContains(t, out, "Mine")
	requireContains(t, out, "user")
}

func TestVersionCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "nfog ") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Name", "Count"}, [][]string{{"alpha", "1"}, {"beta"}}, []columnAlignment{alignLeft, alignRight})
	for _, want := range []string{"Name", "Count", "alpha", "beta", "╭"} {
		requireContains(t, out, want)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}
