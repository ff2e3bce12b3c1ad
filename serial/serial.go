// Package serial runs the protocol over the USB CDC port.
package serial

import (
	"errors"
	"io"
	"time"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/protocol"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/syslog"
)

// DefaultPoll is how long the link sleeps while no bytes are buffered.
const DefaultPoll = 10 * time.Millisecond

// Port is the subset of machine.Serialer the link needs.
type Port interface {
	ReadByte() (byte, error)
	Write(p []byte) (int, error)
	Buffered() int
}

// Link answers protocol frames arriving on a Port and notes each
// exchange in the log.
type Link struct {
	port    Port
	in      *portReader
	handler *protocol.Handler
	log     *syslog.Logger
	verbose bool
}

// NewLink creates a link. log may be nil.
func NewLink(port Port, handler *protocol.Handler, log *syslog.Logger) *Link {
	return &Link{
		port:    port,
		in:      &portReader{port: port, poll: DefaultPoll},
		handler: handler,
		log:     log,
	}
}

// SetVerbose also logs the raw head of every request.
func (l *Link) SetVerbose(on bool) {
	l.verbose = on
}

// SetPoll changes the idle sleep.
func (l *Link) SetPoll(d time.Duration) {
	l.in.poll = d
}

// Handle serves frames until the port fails. Framing errors are logged and
// the reader resynchronises on the next sync byte.
func (l *Link) Handle() error {
	for {
		if err := l.serveOne(); err != nil {
			return err
		}
	}
}

func (l *Link) serveOne() error {
	frame, err := protocol.ReadFrame(l.in)
	switch {
	case errors.Is(err, protocol.ErrInvalidFrame):
		// One byte was consumed; try again from the next one.
		return nil
	case errors.Is(err, protocol.ErrCRCMismatch):
		l.printf("rx bad CRC")
		return protocol.WriteResponse(l.port, &protocol.Response{Status: protocol.StatusCRCError})
	case err != nil:
		return err
	}

	if l.verbose {
		l.printf("rx %s", protocol.FormatBytes(frame.Cmd, frame.Payload))
	}

	resp := l.handler.Handle(frame)
	if err := protocol.WriteResponse(l.port, resp); err != nil {
		return err
	}

	// Reads are not logged; a ReadLog sweep would otherwise evict what it reads.
	if frame.Cmd != protocol.CmdReadLog {
		l.printf("%s", protocol.Describe(frame, resp))
	}
	return nil
}

func (l *Link) printf(format string, args ...any) {
	if l.log != nil {
		l.log.Printf(format, args...)
	}
}

// portReader adapts a Port to io.Reader, sleeping while the port is idle so
// other goroutines keep running.
type portReader struct {
	port Port
	poll time.Duration
}

var _ io.Reader = (*portReader)(nil)

func (r *portReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for r.port.Buffered() == 0 {
		time.Sleep(r.poll)
	}

	n := 0
	for n < len(p) && (n == 0 || r.port.Buffered() > 0) {
		b, err := r.port.ReadByte()
		if err != nil {
			return n, err
		}
		p[n] = b
		n++
	}
	return n, nil
}
