// Package config defines the persisted display settings of the log panel.
// The record is a fixed-size little-endian struct so it can be written to
// flash and sent over the serial protocol without allocation surprises.
package config

import (
	"encoding/binary"
	"errors"
	"io"
)

// CurrentVersion is the config format version.
// Bump this when making breaking changes to the config format.
// When firmware boots and finds a different version in flash, the record is wiped.
const CurrentVersion uint16 = 1

// Size is the encoded length of Display.
const Size = 16

// Flag bits of Display.Flags.
const (
	FlagRotate       uint32 = 1 << 0 // rotate the UI 90 degrees
	FlagLargeUI      uint32 = 1 << 1 // enlarged LCD-segment look
	FlagNoTimestamps uint32 = 1 << 2 // omit the "[ms]" entry prefix
)

// Compile-time defaults.
const (
	DefaultCapacity   uint16 = 32
	MaxCapacity       uint16 = 1024
	DefaultForeground uint16 = 0xFFFF
	DefaultBackground uint16 = 0x0000
)

// Display holds the panel settings.
// Total size: 16 bytes
// Layout:
//
//	[0-1]:   Version (uint16)
//	[2-5]:   Flags (uint32)
//	[6-7]:   Capacity (uint16)
//	[8-9]:   Foreground (uint16, RGB565)
//	[10-11]: Background (uint16, RGB565)
//	[12-15]: Reserved
type Display struct {
	Version    uint16
	Flags      uint32
	Capacity   uint16 // retained log entries
	Foreground uint16
	Background uint16
	Reserved   uint32
}

// Errors
var (
	ErrInvalidSize     = errors.New("invalid config size")
	ErrInvalidCapacity = errors.New("invalid log capacity")
	ErrSameColors      = errors.New("foreground equals background")
)

// Default returns the compiled-in settings.
func Default() Display {
	return Display{
		Version:    CurrentVersion,
		Capacity:   DefaultCapacity,
		Foreground: DefaultForeground,
		Background: DefaultBackground,
	}
}

// Validate checks that the settings can drive a panel.
func (d *Display) Validate() error {
	if d.Capacity == 0 || d.Capacity > MaxCapacity {
		return ErrInvalidCapacity
	}
	if d.Flags&FlagLargeUI == 0 && d.Foreground == d.Background {
		return ErrSameColors
	}
	return nil
}

// Has reports whether every bit of flag is set.
func (d *Display) Has(flag uint32) bool {
	return d.Flags&flag == flag
}

// Set turns flag on or off.
func (d *Display) Set(flag uint32, on bool) {
	if on {
		d.Flags |= flag
	} else {
		d.Flags &^= flag
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (d *Display) MarshalBinary() ([]byte, error) {
	buf := make([]byte, Size)
	binary.LittleEndian.PutUint16(buf[0:], d.Version)
	binary.LittleEndian.PutUint32(buf[2:], d.Flags)
	binary.LittleEndian.PutUint16(buf[6:], d.Capacity)
	binary.LittleEndian.PutUint16(buf[8:], d.Foreground)
	binary.LittleEndian.PutUint16(buf[10:], d.Background)
	binary.LittleEndian.PutUint32(buf[12:], d.Reserved)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *Display) UnmarshalBinary(data []byte) error {
	if len(data) < Size {
		return ErrInvalidSize
	}
	d.Version = binary.LittleEndian.Uint16(data[0:])
	d.Flags = binary.LittleEndian.Uint32(data[2:])
	d.Capacity = binary.LittleEndian.Uint16(data[6:])
	d.Foreground = binary.LittleEndian.Uint16(data[8:])
	d.Background = binary.LittleEndian.Uint16(data[10:])
	d.Reserved = binary.LittleEndian.Uint32(data[12:])
	return nil
}

// WriteTo writes the encoded record to w.
func (d *Display) WriteTo(w io.Writer) (int64, error) {
	buf, _ := d.MarshalBinary()
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadFrom reads one encoded record from r.
func (d *Display) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, Size)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return int64(n), err
	}
	return int64(n), d.UnmarshalBinary(buf)
}
