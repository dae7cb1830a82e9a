package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nfog/internal/catalog"
	"nfog/internal/config"
	"nfog/internal/generate"
	"nfog/internal/media/mediainfo"
)

const testMediaJSON = `{"media":{"@ref":"x","track":[
 {"@type":"General","Format":"Matroska","extra":{"IMDB":"tt0487831"}},
 {"@type":"Video","StreamOrder":"0","Format":"AVC","BitRate":"8000000","Width":"1920","Height":"1080",
  "DisplayAspectRatio":"1.778","FrameRate":"25.000","FrameRate_Num":"25","FrameRate_Den":"1","ScanType":"Progressive"},
 {"@type":"Audio","StreamOrder":"1","Format":"AAC","BitRate":"192000","Channels":"2","Language":"en"},
 {"@type":"Menu","extra":{"_00_00_00_000":"en:Opening"}}
]}}`

type stubCatalog struct {
	title   catalog.Title
	queries []catalog.Query
}

func (s *stubCatalog) Lookup(_ context.Context, _ string, q catalog.Query) (catalog.Title, string, []catalog.Attempt, error) {
	s.queries = append(s.queries, q)
	return s.title, "imdb", []catalog.Attempt{{Provider: "imdb", Stage: "ok"}}, nil
}

type cliTestEnv struct {
	baseDir    string
	configPath string
	artworkDir string
	catalog    *stubCatalog
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("NFOG_CONFIG", "")
	t.Setenv("TMDB_API_KEY", "")

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config", "config.toml"),
		artworkDir: filepath.Join(base, "artwork"),
		catalog:    &stubCatalog{title: catalog.Title{Name: "Example", Type: "movie", Year: 2020, Languages: []string{"en"}}},
	}
	content := fmt.Sprintf("[paths]\nartwork_dir = %q\ncache_dir = %q\nlog_dir = %q\n\n[logging]\nlevel = \"error\"\n",
		env.artworkDir,
		filepath.Join(base, "cache"),
		filepath.Join(base, "logs"),
	)
	if err := os.MkdirAll(filepath.Dir(env.configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (env *cliTestEnv) newContext(t *testing.T) *commandContext {
	t.Helper()
	media, err := mediainfo.Parse([]byte(testMediaJSON))
	if err != nil {
		t.Fatalf("parse media fixture: %v", err)
	}
	ctx := newCommandContext()
	ctx.probe = generate.ProbeFunc(func(context.Context, string) (mediainfo.Result, error) {
		return media, nil
	})
	ctx.openCatalog = func(*config.Config, *slog.Logger) (generate.Catalog, func() error, error) {
		return env.catalog, func() error { return nil }, nil
	}
	ctx.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return ctx
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	ctx := env.newContext(t)
	t.Cleanup(func() { _ = ctx.close() })

	cmd := buildRootCommand(ctx)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
