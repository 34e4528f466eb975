package asciiart

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jmarren/asciiart/imageutil"
)

// Printable ASCII range accepted by the add and remove commands.
const (
	minPrintable = 32
	maxPrintable = 126
)

var errResolutionBounds = errors.New("asciiart: resolution exceeds boundaries")

// Shell is the interactive command interpreter. It owns the session state
// (character set, resolution, reverse flag, output method) and drives the
// compositor on demand. Input and output streams are injected so the loop
// is testable with scripted sessions.
type Shell struct {
	cfg     *Config
	matcher *Matcher
	comp    *Compositor

	resolution int
	reverse    bool
	htmlOutput bool

	paddedWidth  int
	paddedHeight int

	in  io.Reader
	out io.Writer
}

// NewShell creates a Shell for one image and matcher. The initial
// resolution and output method come from the configuration.
func NewShell(img *imageutil.PixelGrid, matcher *Matcher, cfg *Config, in io.Reader, out io.Writer) (*Shell, error) {
	comp, err := NewCompositor(img, matcher)
	if err != nil {
		return nil, err
	}

	padded := comp.Padded()
	return &Shell{
		cfg:          cfg,
		matcher:      matcher,
		comp:         comp,
		resolution:   cfg.Resolution,
		htmlOutput:   cfg.Output == OutputHTML,
		paddedWidth:  padded.Width(),
		paddedHeight: padded.Height(),
		in:           in,
		out:          out,
	}, nil
}

// Run reads commands until exit or end of input.
func (s *Shell) Run() error {
	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, ">>> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		if s.dispatch(parts[0], parts[1:]) {
			return nil
		}
	}
}

// dispatch executes one command. The returned bool is true for exit.
func (s *Shell) dispatch(command string, args []string) bool {
	switch command {
	case "exit":
		return true
	case "add":
		s.cmdAdd(args)
	case "remove":
		s.cmdRemove(args)
	case "res":
		s.cmdResolution(args)
	case "chars":
		s.cmdChars()
	case "reverse":
		s.reverse = !s.reverse
	case "output":
		s.cmdOutput(args)
	case "asciiArt":
		s.cmdAsciiArt()
	default:
		fmt.Fprintln(s.out, "Did not execute due to incorrect command.")
	}
	return false
}

func (s *Shell) cmdAdd(args []string) {
	if len(args) < 1 || s.applyCharArg(args[0], func(c rune) { s.matcher.Add(c) }, true) != nil {
		fmt.Fprintln(s.out, "Did not add due to incorrect format.")
	}
}

func (s *Shell) cmdRemove(args []string) {
	if len(args) < 1 || s.applyCharArg(args[0], s.matcher.Remove, false) != nil {
		fmt.Fprintln(s.out, "Did not remove due to incorrect format.")
	}
}

// applyCharArg parses a character argument ("all", "space", a single
// character, or a range like "a-z" in either direction) and applies f to
// every character it names. When strict is set, out-of-range characters are
// an error; otherwise they are silently skipped, so removing characters that
// were never addable stays a no-op.
func (s *Shell) applyCharArg(arg string, f func(rune), strict bool) error {
	switch {
	case arg == "all":
		for c := rune(minPrintable); c <= maxPrintable; c++ {
			f(c)
		}
		return nil

	case arg == "space":
		f(' ')
		return nil

	case len(arg) == 3 && arg[1] == '-':
		start, end := rune(arg[0]), rune(arg[2])
		if start < minPrintable || start > maxPrintable ||
			end < minPrintable || end > maxPrintable {
			if strict {
				return fmt.Errorf("asciiart: character out of range in %q", arg)
			}
			return nil
		}
		if start <= end {
			for c := start; c <= end; c++ {
				f(c)
			}
		} else {
			for c := start; c >= end; c-- {
				f(c)
			}
		}
		return nil

	case len(arg) == 1:
		c := rune(arg[0])
		if c < minPrintable || c > maxPrintable {
			if strict {
				return fmt.Errorf("asciiart: character %q out of range", c)
			}
			return nil
		}
		f(c)
		return nil
	}
	return fmt.Errorf("asciiart: malformed character argument %q", arg)
}

func (s *Shell) cmdResolution(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(s.out, "Resolution set to %d.\n", s.resolution)
		return
	}

	var newRes int
	switch args[0] {
	case "up":
		newRes = s.resolution * 2
	case "down":
		newRes = s.resolution / 2
	default:
		fmt.Fprintln(s.out, "Did not change resolution due to incorrect format.")
		return
	}

	if err := s.setResolution(newRes); err != nil {
		if errors.Is(err, errResolutionBounds) {
			fmt.Fprintln(s.out, "Did not change resolution due to exceeding boundaries.")
		} else {
			fmt.Fprintln(s.out, "Did not change resolution due to incorrect format.")
		}
		return
	}
	fmt.Fprintf(s.out, "Resolution set to %d\n", s.resolution)
}

// setResolution validates and applies a new resolution. Valid resolutions
// are powers of two within [max(1, paddedW/paddedH), paddedW], so a row of
// the output never holds fewer blocks than the aspect ratio requires or more
// blocks than there are pixel columns.
func (s *Shell) setResolution(newRes int) error {
	if !isPowerOfTwo(newRes) {
		return fmt.Errorf("asciiart: resolution %d is not a power of two", newRes)
	}

	minRes := s.paddedWidth / s.paddedHeight
	if minRes < 1 {
		minRes = 1
	}
	if newRes < minRes || newRes > s.paddedWidth {
		return errResolutionBounds
	}
	s.resolution = newRes
	return nil
}

func (s *Shell) cmdChars() {
	members := s.matcher.Members()
	if len(members) == 0 {
		fmt.Fprintln(s.out)
		return
	}
	for _, c := range members {
		fmt.Fprintf(s.out, "%c ", c)
	}
	fmt.Fprintln(s.out)
}

func (s *Shell) cmdOutput(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Did not change output method due to incorrect format.")
		return
	}
	switch args[0] {
	case OutputConsole:
		s.htmlOutput = false
	case OutputHTML:
		s.htmlOutput = true
	default:
		fmt.Fprintln(s.out, "Did not change output method due to incorrect format.")
	}
}

func (s *Shell) cmdAsciiArt() {
	if s.matcher.Len() < 2 {
		fmt.Fprintln(s.out, "Did not execute. Charset is too small.")
		return
	}

	matrix, err := s.comp.Run(s.resolution, s.reverse)
	if err != nil {
		fmt.Fprintf(s.out, "Did not execute: %v\n", err)
		return
	}

	var writer MatrixWriter
	if s.htmlOutput {
		writer = NewHTMLWriter(s.cfg.HTMLPath, s.cfg.HTMLFont)
	} else {
		writer = NewConsoleWriter(s.out)
	}
	if err := writer.Write(matrix); err != nil {
		fmt.Fprintf(s.out, "Did not execute: %v\n", err)
	}
}
