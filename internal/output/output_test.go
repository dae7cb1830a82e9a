package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"nfog/internal/fileutil"
)

func TestPath(t *testing.T) {
	tests := []struct {
		media, dir, name, ext, want string
	}{
		{"/media/Movie.2020.mkv", "", "Movie.2020", ".nfo", "/media/Movie.2020.nfo"},
		{"/media/Movie.2020.mkv", "/out", "Movie.2020", ".txt", "/out/Movie.2020.txt"},
		{"/media/x.mkv", "", "What: If?", ".nfo", "/media/What- If.nfo"},
		{"/media/x.mkv", "", "  ", ".nfo", "/media/release.nfo"},
	}
	for _, tt := range tests {
		if got := Path(tt.media, tt.dir, tt.name, tt.ext); got != filepath.FromSlash(tt.want) {
			t.Errorf("Path(%q, %q, %q) = %q, want %q", tt.media, tt.dir, tt.name, got, tt.want)
		}
	}
}

func TestEncode(t *testing.T) {
	text := "Café █"

	got, err := Encode(text, "utf8")
	if err != nil || string(got) != text {
		t.Fatalf("utf8 encode = %q, %v", got, err)
	}

	got, err = Encode(text, "cp437")
	if err != nil {
		t.Fatalf("cp437 encode returned error: %v", err)
	}
	want := []byte{'C', 'a', 'f', 0x82, ' ', 0xDB}
	if string(got) != string(want) {
		t.Fatalf("cp437 encode = % x, want % x", got, want)
	}

	if _, err := Encode("日本", "cp437"); err == nil {
		t.Fatal("expected error for unencodable runes")
	}
	if _, err := Encode(text, "klingon"); !errors.Is(err, ErrUnknownEncoding) {
		t.Fatalf("expected ErrUnknownEncoding, got %v", err)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Release.nfo")
	if err := Write(path, "hello", "", false); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if got, _ := os.ReadFile(path); string(got) != "hello" {
		t.Fatalf("unexpected content %q", got)
	}
	if err := Write(path, "again", "", false); !errors.Is(err, fileutil.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if err := Write(path, "again", "", true); err != nil {
		t.Fatalf("overwrite returned error: %v", err)
	}
}
