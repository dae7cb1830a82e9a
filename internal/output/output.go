// Package output derives the destination of a generated NFO, encodes the text
// and writes it next to the media file.
package output

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"nfog/internal/fileutil"
)

// DefaultEncoding is used when no encoding is configured.
const DefaultEncoding = "utf-8"

// ErrUnknownEncoding is returned for names IANA does not define or x/text
// cannot encode.
var ErrUnknownEncoding = errors.New("unknown text encoding")

var encodingAliases = map[string]string{
	"utf8":   "utf-8",
	"cp437":  "IBM437",
	"dos":    "IBM437",
	"cp850":  "IBM850",
	"cp1252": "windows-1252",
	"latin1": "ISO-8859-1",
}

var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// FileName turns a release name into a safe file name with ext appended.
func FileName(releaseName, ext string) string {
	name := strings.TrimSpace(fileNameReplacer.Replace(strings.TrimSpace(releaseName)))
	if name == "" {
		name = "release"
	}
	return name + ext
}

// Path places the output next to the media file unless dir overrides it.
func Path(mediaPath, dir, releaseName, ext string) string {
	if strings.TrimSpace(dir) == "" {
		dir = filepath.Dir(mediaPath)
	}
	return filepath.Join(dir, FileName(releaseName, ext))
}

// LookupEncoding resolves an IANA name or common alias. UTF-8 resolves to a
// nil encoding, meaning the text is written unchanged.
func LookupEncoding(name string) (encoding.Encoding, string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultEncoding
	}
	if alias, ok := encodingAliases[key]; ok {
		key = alias
	}
	if strings.EqualFold(key, "utf-8") {
		return nil, "UTF-8", nil
	}
	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil || enc == nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = key
	}
	return enc, canonical, nil
}

// Encode converts text to the named encoding. Runes the encoding cannot
// represent are an error rather than silently replaced.
func Encode(text, encodingName string) ([]byte, error) {
	enc, canonical, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return []byte(text), nil
	}
	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode as %s: %w", canonical, err)
	}
	return out, nil
}

// Write encodes text and writes it atomically to path.
func Write(path, text, encodingName string, overwrite bool) error {
	data, err := Encode(text, encodingName)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644, overwrite); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
