package artwork

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nfog/internal/templates"
	"nfog/internal/textlayout"
)

var generated = time.Date(2024, 3, 9, 18, 5, 0, 0, time.UTC)

func sampleDoc() templates.Document {
	return templates.NewDocument([]string{
		"  Some.Release-GRP",
		"",
		"  Title    : Example",
		"  Chapters : No",
		"",
		"──┤    Video    ├─────────────────────────────────────────────[ 00 ]──",
		"",
		"  --",
	})
}

func TestSkipPadding(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", true},
		{"     ", true},
		{"[note]text[/note]", true},
		{"[hr][/hr]", true},
		{"Title    : Example", false},
		{"[img]x[/img] tail", false},
	}
	for _, tt := range tests {
		if got := skipPadding(tt.line); got != tt.want {
			t.Errorf("skipPadding(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestPadLinesWidensForLongReleaseName(t *testing.T) {
	long := strings.Repeat("A", 80)
	lines := padLines([]string{"Release  : " + long, "plain", "", "[hr][/hr]"}, long)
	if got := textlayout.Width(lines[0]); got != len("Release  : ")+80 {
		t.Fatalf("label line width = %d", got)
	}
	if got := textlayout.Width(lines[1]); got != Width {
		t.Fatalf("plain line width = %d", got)
	}
	if lines[2] != "" || lines[3] != "[hr][/hr]" {
		t.Fatalf("skipped lines were padded: %q", lines[2:])
	}
}

func TestFramedNFO(t *testing.T) {
	out, err := Framed().Compose(sampleDoc(), Frame{FileExt: ".nfo", ReleaseName: "Some.Release-GRP", Generated: generated})
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	lines := strings.Split(out, "\n")
	if lines[0] != framedArt[0] {
		t.Fatalf("expected art first, got %q", lines[0])
	}
	if strings.Contains(out, "Some.Release-GRP") {
		t.Fatal("release name heading should be dropped for nfo output")
	}
	if lines[len(framedArt)+1] != "  Title    : Example" {
		t.Fatalf("unexpected first document line %q", lines[len(framedArt)+1])
	}
	tail := lines[len(lines)-3:]
	want := []string{
		strings.TrimRight(textlayout.Center("-- --", Width), " "),
		strings.TrimRight(textlayout.Center("{ nfog }", Width), " "),
		strings.TrimRight(textlayout.Center("2024.03.09 18:05", Width), " "),
	}
	for i := range want {
		if tail[i] != want[i] {
			t.Fatalf("footer line %d = %q, want %q", i, tail[i], want[i])
		}
	}
}

func TestCenteredWrapsLongLines(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", Width/4))
	got, err := centered([]string{"short", long})
	if err != nil {
		t.Fatalf("centered returned error: %v", err)
	}
	if len(got) < 3 {
		t.Fatalf("expected the long line to wrap, got %q", got)
	}
	if got[0] != strings.TrimRight(textlayout.Center("short", Width), " ") {
		t.Fatalf("first line = %q", got[0])
	}
	for _, line := range got {
		if textlayout.Width(line) > Width {
			t.Fatalf("line %q wider than %d columns", line, Width)
		}
	}
}

func TestFramedBBCodePadsLines(t *testing.T) {
	out, err := Framed().Compose(sampleDoc(), Frame{FileExt: ".txt", ReleaseName: "Some.Release-GRP", Generated: generated})
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	lines := strings.Split(out, "\n")
	if lines[0] != "[align=center]" || lines[len(lines)-1] != "[/align]" {
		t.Fatalf("missing alignment wrapper: %q ... %q", lines[0], lines[len(lines)-1])
	}
	for _, line := range lines[1 : len(lines)-1] {
		if skipPadding(line) {
			continue
		}
		if textlayout.Width(line) < Width {
			t.Fatalf("line not padded to %d: %q", Width, line)
		}
	}
	if !strings.Contains(out, "\n[hr][/hr]\n") {
		t.Fatal("missing horizontal rule before footer")
	}
}

func TestClassicPrependsArt(t *testing.T) {
	doc := sampleDoc()
	out, err := Classic().Compose(doc, Frame{FileExt: ".nfo"})
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	want := strings.Join(classicArt, "\n") + "\n\n" + doc.String()
	if out != want {
		t.Fatalf("unexpected composition\n%s", out)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Stars.txt"), []byte("  * * *  \r\n *  *  *\r\n\r\n"), 0o644); err != nil {
		t.Fatalf("write art: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	loaded, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir returned error: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Name() != "Stars" {
		t.Fatalf("unexpected artworks: %v", loaded)
	}
	out, err := loaded[0].Compose(templates.NewDocument([]string{"body"}), Frame{FileExt: ".nfo"})
	if err != nil {
		t.Fatalf("Compose returned error: %v", err)
	}
	if out != "  * * *\n *  *  *\n\nbody" {
		t.Fatalf("unexpected output %q", out)
	}

	missing, err := LoadDir(filepath.Join(dir, "missing"))
	if err != nil || missing != nil {
		t.Fatalf("missing dir: %v %v", missing, err)
	}
}

func TestBuiltinRegistry(t *testing.T) {
	reg, err := Builtin(Prepend("Custom", []string{"x"}))
	if err != nil {
		t.Fatalf("Builtin returned error: %v", err)
	}
	for _, name := range []string{"classic", "FRAMED", "Custom"} {
		if _, ok := reg.Get(name); !ok {
			t.Fatalf("artwork %q missing", name)
		}
	}
	if _, err := Builtin(Prepend("classic", nil)); err == nil {
		t.Fatal("expected duplicate artwork error")
	}
}
