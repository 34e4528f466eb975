package asciiart

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// MatrixWriter renders a finished character matrix. Implementations own all
// presentation concerns; the matrix itself is plain row-major runes.
type MatrixWriter interface {
	Write(matrix [][]rune) error
}

// ConsoleWriter renders a character matrix as text, one row per line with a
// space after each character.
type ConsoleWriter struct {
	Out io.Writer
}

// NewConsoleWriter creates a ConsoleWriter targeting w.
func NewConsoleWriter(w io.Writer) *ConsoleWriter {
	return &ConsoleWriter{Out: w}
}

// Write renders the matrix to the writer's output.
func (cw *ConsoleWriter) Write(matrix [][]rune) error {
	var sb strings.Builder
	for _, row := range matrix {
		for _, c := range row {
			sb.WriteRune(c)
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(cw.Out, sb.String())
	return err
}

// HTMLWriter renders a character matrix as a standalone HTML page using a
// monospace font, overwriting the target file on each write.
type HTMLWriter struct {
	Path       string
	FontFamily string
}

// NewHTMLWriter creates an HTMLWriter targeting path with the given font
// family.
func NewHTMLWriter(path, fontFamily string) *HTMLWriter {
	return &HTMLWriter{Path: path, FontFamily: fontFamily}
}

// escapeHTML replaces characters that would break the markup. Spaces become
// non-breaking so runs of them survive HTML whitespace collapsing.
func escapeHTML(c rune) string {
	switch c {
	case '&':
		return "&amp;"
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case ' ':
		return "&nbsp;"
	default:
		return string(c)
	}
}

// Write renders the matrix to the target HTML file.
func (hw *HTMLWriter) Write(matrix [][]rune) error {
	f, err := os.Create(hw.Path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<body>\n")
	fmt.Fprintf(&sb, "<p style=\"font-family:'%s',monospace;font-size:8px;letter-spacing:2px;line-height:1;\">\n",
		hw.FontFamily)
	for _, row := range matrix {
		for _, c := range row {
			sb.WriteString(escapeHTML(c))
		}
		sb.WriteString("<br>\n")
	}
	sb.WriteString("</p>\n</body>\n</html>\n")

	if _, err := io.WriteString(f, sb.String()); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
