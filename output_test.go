package asciiart

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	cw := NewConsoleWriter(&buf)

	matrix := [][]rune{
		{'a', 'b'},
		{'c', 'd'},
	}
	if err := cw.Write(matrix); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := "a b \nc d \n"
	if buf.String() != want {
		t.Errorf("Console output = %q, want %q", buf.String(), want)
	}
}

func TestHTMLWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	hw := NewHTMLWriter(path, "Courier New")

	matrix := [][]rune{
		{'&', '<'},
		{'>', ' '},
	}
	if err := hw.Write(matrix); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)

	for _, want := range []string{
		"&amp;&lt;<br>",
		"&gt;&nbsp;<br>",
		"font-family:'Courier New'",
		"<!DOCTYPE html>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML output missing %q:\n%s", want, got)
		}
	}
}

func TestHTMLWriterOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	hw := NewHTMLWriter(path, "Courier New")

	if err := hw.Write([][]rune{{'a'}}); err != nil {
		t.Fatal(err)
	}
	if err := hw.Write([][]rune{{'b'}}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "a<br>") {
		t.Error("Second write should replace the first")
	}
	if !strings.Contains(string(data), "b<br>") {
		t.Error("Second write content missing")
	}
}

func TestHTMLWriterBadPath(t *testing.T) {
	hw := NewHTMLWriter(filepath.Join(t.TempDir(), "missing", "out.html"), "Courier New")
	if err := hw.Write([][]rune{{'a'}}); err == nil {
		t.Error("Writing into a missing directory should fail")
	}
}
