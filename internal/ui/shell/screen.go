package shell

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

const clearSequence = "\x1b[H\x1b[2J"

// screen is the router's render target. Pages render into a buffer that is
// written to the terminal together with the header once the render is done.
type screen struct {
	out         io.Writer
	interactive bool
	page        bytes.Buffer
}

func newScreen(out io.Writer) *screen {
	s := &screen{out: out}
	if f, ok := out.(*os.File); ok {
		s.interactive = term.IsTerminal(int(f.Fd()))
	}
	return s
}

func (s *screen) Write(p []byte) (int, error) { return s.page.Write(p) }

func (s *screen) Clear() { s.page.Reset() }

// present writes the header followed by the rendered page.
func (s *screen) present(header func(w io.Writer) error) error {
	var frame bytes.Buffer
	if s.interactive {
		frame.WriteString(clearSequence)
	}
	if err := header(&frame); err != nil {
		return err
	}
	frame.Write(s.page.Bytes())
	_, err := s.out.Write(frame.Bytes())
	return err
}
