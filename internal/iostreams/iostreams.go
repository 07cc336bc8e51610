package iostreams

import (
	"bytes"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

var osStreams *IOStreams

// IOStreams groups the three standard streams so commands can be tested
// against in-memory buffers.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Key is the context key type for IOStreams.
type Key struct{}

// StreamsKey is the context key under which the active streams are stored.
var StreamsKey = Key{}

type fdProvider interface {
	Fd() uintptr
}

// GetOSIOStreams returns a process wide instance bound to the OS streams.
func GetOSIOStreams() *IOStreams {
	if osStreams == nil {
		osStreams = &IOStreams{
			In:     os.Stdin,
			Out:    os.Stdout,
			ErrOut: os.Stderr,
		}
	}
	return osStreams
}

// OutFd returns the file descriptor behind Out when it has one.
func (s *IOStreams) OutFd() (uintptr, bool) {
	if s == nil || s.Out == nil {
		return 0, false
	}
	fp, ok := s.Out.(fdProvider)
	if !ok {
		return 0, false
	}
	fd := fp.Fd()
	if fd == ^uintptr(0) {
		return 0, false
	}
	return fd, true
}

// IsOutputTTY reports whether Out is attached to a terminal.
func (s *IOStreams) IsOutputTTY() bool {
	fd, ok := s.OutFd()
	if !ok {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func NewTestIOStreamsOnly() IOStreams {
	return IOStreams{
		In:     &bytes.Buffer{},
		Out:    &bytes.Buffer{},
		ErrOut: &bytes.Buffer{},
	}
}

func NewTestIOStreams() (IOStreams, *bytes.Buffer, *bytes.Buffer, *bytes.Buffer) {
	in := &bytes.Buffer{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return IOStreams{
		In:     in,
		Out:    out,
		ErrOut: errOut,
	}, in, out, errOut
}
