// Package bundle exports and imports a user's nfog setup (configuration and
// artwork files) as a single gzip-compressed JSON file.
package bundle

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"nfog/internal/artwork"
	"nfog/internal/config"
	"nfog/internal/fileutil"
)

// Version is the bundle format version written by Export.
const Version = 1

// ErrUnsupportedVersion is returned for bundles from a newer nfog.
var ErrUnsupportedVersion = errors.New("unsupported bundle version")

// Bundle is the exported payload.
type Bundle struct {
	Version int               `json:"version"`
	ID      string            `json:"id"`
	Created time.Time         `json:"created"`
	Config  string            `json:"config"`
	Artwork map[string]string `json:"artwork"`
}

// Names returns the artwork names in the bundle, sorted.
func (b Bundle) Names() []string {
	names := make([]string, 0, len(b.Artwork))
	for name := range b.Artwork {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileName returns the export file name for a bundle created at t.
func FileName(t time.Time) string {
	return "nfog.export." + t.Format("20060102-150405") + ".json.gz"
}

// Collect reads the config file (if any) and every art file in artworkDir.
func Collect(configPath, artworkDir string, now time.Time) (Bundle, error) {
	b := Bundle{
		Version: Version,
		ID:      uuid.NewString(),
		Created: now.UTC(),
		Artwork: map[string]string{},
	}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		b.Config = string(data)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Bundle{}, fmt.Errorf("read config: %w", err)
	}

	entries, err := os.ReadDir(artworkDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Bundle{}, fmt.Errorf("read artwork dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), artwork.FileExt) {
			continue
		}
		art, err := os.ReadFile(filepath.Join(artworkDir, entry.Name()))
		if err != nil {
			return Bundle{}, fmt.Errorf("read artwork %s: %w", entry.Name(), err)
		}
		b.Artwork[strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))] = string(art)
	}
	return b, nil
}

// Export writes b to dir and returns the created file path.
func Export(b Bundle, dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("export path %s must be a directory", dir)
	}
	var buf strings.Builder
	if err := Encode(&buf, b); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(b.Created))
	if err := fileutil.WriteFileAtomic(path, []byte(buf.String()), 0o644, false); err != nil {
		return "", fmt.Errorf("write bundle: %w", err)
	}
	return path, nil
}

// Encode writes b as gzip-compressed JSON.
func Encode(w io.Writer, b Bundle) error {
	zw := gzip.NewWriter(w)
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode bundle: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress bundle: %w", err)
	}
	return nil
}

// Decode reads a bundle written by Encode.
func Decode(r io.Reader) (Bundle, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return Bundle{}, fmt.Errorf("open bundle: %w", err)
	}
	defer zr.Close()
	var b Bundle
	if err := json.NewDecoder(zr).Decode(&b); err != nil {
		return Bundle{}, fmt.Errorf("decode bundle: %w", err)
	}
	if b.Version < 1 || b.Version > Version {
		return Bundle{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, b.Version)
	}
	for name := range b.Artwork {
		if !validArtName(name) {
			return Bundle{}, fmt.Errorf("bundle contains invalid artwork name %q", name)
		}
	}
	return b, nil
}

// Open decodes the bundle file at path.
func Open(path string) (Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("open bundle: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Apply installs b: the configuration is replaced entirely and art files are
// overwritten only when they share a name with a bundled one.
func Apply(b Bundle, configPath, artworkDir string) error {
	if strings.TrimSpace(b.Config) != "" {
		if err := config.WriteDocument(configPath, []byte(b.Config)); err != nil {
			return fmt.Errorf("import config: %w", err)
		}
	}
	for _, name := range b.Names() {
		path := filepath.Join(artworkDir, name+artwork.FileExt)
		if err := fileutil.WriteFileAtomic(path, []byte(b.Artwork[name]), 0o644, true); err != nil {
			return fmt.Errorf("import artwork %s: %w", name, err)
		}
	}
	return nil
}

func validArtName(name string) bool {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
