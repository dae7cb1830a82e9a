package artwork

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileExt is the extension of user art files.
const FileExt = ".txt"

// LoadDir reads every <Name>.txt in dir as a prepend artwork named Name.
// A missing directory yields no artworks.
func LoadDir(dir string) ([]Artwork, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read artwork dir: %w", err)
	}
	var out []Artwork
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), FileExt) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read artwork %s: %w", path, err)
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		out = append(out, Prepend(name, ParseArt(string(data))))
	}
	return out, nil
}

// ParseArt splits art text into lines, normalizing line endings and dropping
// trailing whitespace and trailing blank lines.
func ParseArt(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
