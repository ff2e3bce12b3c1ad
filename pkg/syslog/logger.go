package syslog

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/ui"
)

// MaxMessageLen bounds the formatted message body of one entry in bytes.
// The timestamp prefix is not counted.
const MaxMessageLen = 127

// Logger formats producer messages into store entries.
type Logger struct {
	store      *Store
	clock      func() time.Duration
	timestamps bool
	mirror     io.Writer
	halt       func(msg string)
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock sets the elapsed-time source used for the "[ms]" prefix.
func WithClock(clock func() time.Duration) Option {
	return func(l *Logger) {
		l.clock = clock
	}
}

// WithTimestamps turns the "[ms]" prefix on or off. It is on by default.
func WithTimestamps(on bool) Option {
	return func(l *Logger) {
		l.timestamps = on
	}
}

// WithMirror copies every entry, followed by CRLF, to w.
func WithMirror(w io.Writer) Option {
	return func(l *Logger) {
		l.mirror = w
	}
}

// WithHalt sets what Fatalf does after logging. The default panics.
func WithHalt(halt func(msg string)) Option {
	return func(l *Logger) {
		l.halt = halt
	}
}

// NewLogger creates a Logger writing into store. Elapsed time is measured
// from the call to NewLogger unless WithClock is given.
func NewLogger(store *Store, opts ...Option) *Logger {
	boot := time.Now()
	l := &Logger{
		store:      store,
		clock:      func() time.Duration { return time.Since(boot) },
		timestamps: true,
		halt:       func(msg string) { panic(msg) },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Store returns the backing store.
func (l *Logger) Store() *Store {
	return l.store
}

// Printf formats a message and appends it as one entry. Bodies longer than
// MaxMessageLen are cut, never rejected. It returns the formatted length
// before truncation.
func (l *Logger) Printf(format string, args ...any) int {
	msg := fmt.Sprintf(format, args...)
	l.append(msg)
	return len(msg)
}

// Print appends its operands formatted as by fmt.Sprint.
func (l *Logger) Print(args ...any) int {
	msg := fmt.Sprint(args...)
	l.append(msg)
	return len(msg)
}

// Write appends p as one entry with trailing line breaks removed. It lets
// the logger back a log.Logger or fmt.Fprintf.
func (l *Logger) Write(p []byte) (int, error) {
	l.append(strings.TrimRight(string(p), "\r\n"))
	return len(p), nil
}

// Fatalf logs a "FATAL: " entry and halts. It does not return unless the
// halt function does.
func (l *Logger) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.append("FATAL: " + msg)
	l.halt(msg)
}

func (l *Logger) append(msg string) {
	msg = ui.Truncate(msg, MaxMessageLen)
	if l.timestamps {
		msg = "[" + strconv.FormatInt(l.clock().Milliseconds(), 10) + "]" + msg
	}
	l.store.Append(msg)
	if l.mirror != nil {
		io.WriteString(l.mirror, msg+"\r\n")
	}
}
