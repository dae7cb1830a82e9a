package bundle_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nfog/internal/bundle"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	src := t.TempDir()
	configPath := filepath.Join(src, "config.toml")
	artDir := filepath.Join(src, "artwork")
	writeFile(t, configPath, "[catalog]\nprovider = \"imdb\"\ncache_ttl_hours = 3\n")
	writeFile(t, filepath.Join(artDir, "Logo.txt"), "  /\\\n /  \\\n")
	writeFile(t, filepath.Join(artDir, "notes.md"), "ignored")

	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	b, err := bundle.Collect(configPath, artDir, created)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if len(b.Artwork) != 1 || b.ID == "" {
		t.Fatalf("unexpected bundle %+v", b)
	}

	outDir := t.TempDir()
	path, err := bundle.Export(b, outDir)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if filepath.Base(path) != "nfog.export.20260304-050607.json.gz" {
		t.Fatalf("unexpected export name %q", path)
	}

	decoded, err := bundle.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if decoded.ID != b.ID || decoded.Config != b.Config || !decoded.Created.Equal(created) {
		t.Fatalf("decoded bundle differs: %+v", decoded)
	}

	dst := t.TempDir()
	dstConfig := filepath.Join(dst, "config.toml")
	dstArt := filepath.Join(dst, "artwork")
	writeFile(t, filepath.Join(dstArt, "Logo.txt"), "old")
	writeFile(t, filepath.Join(dstArt, "Other.txt"), "kept")
	if err := bundle.Apply(decoded, dstConfig, dstArt); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got, _ := os.ReadFile(dstConfig); !strings.Contains(string(got), "cache_ttl_hours = 3") {
		t.Fatalf("config not imported: %q", got)
	}
	if got, _ := os.ReadFile(filepath.Join(dstArt, "Logo.txt")); string(got) != "  /\\\n /  \\\n" {
		t.Fatalf("artwork not overwritten: %q", got)
	}
	if got, _ := os.ReadFile(filepath.Join(dstArt, "Other.txt")); string(got) != "kept" {
		t.Fatalf("unrelated artwork touched: %q", got)
	}
}

func TestApplyRejectsInvalidConfig(t *testing.T) {
	b := bundle.Bundle{Version: bundle.Version, Config: "[catalog]\nprovider = \"omdb\"\n"}
	dst := filepath.Join(t.TempDir(), "config.toml")
	if err := bundle.Apply(b, dst, t.TempDir()); err == nil {
		t.Fatal("expected invalid config to be rejected")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatal("config must not be written when invalid")
	}
}

func TestDecodeRejectsBadBundles(t *testing.T) {
	var buf bytes.Buffer
	if err := bundle.Encode(&buf, bundle.Bundle{Version: 99}); err != nil {
		t.Fatal(err)
	}
	if _, err := bundle.Decode(&buf); !errors.Is(err, bundle.ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}

	buf.Reset()
	if err := bundle.Encode(&buf, bundle.Bundle{Version: 1, Artwork: map[string]string{"../evil": "x"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := bundle.Decode(&buf); err == nil {
		t.Fatal("expected path traversal name to be rejected")
	}

	if _, err := bundle.Decode(strings.NewReader("not gzip")); err == nil {
		t.Fatal("expected error for non-gzip input")
	}
}

func TestExportRequiresDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	writeFile(t, file, "x")
	if _, err := bundle.Export(bundle.Bundle{Version: 1}, file); err == nil {
		t.Fatal("expected error for non-directory export path")
	}
}
