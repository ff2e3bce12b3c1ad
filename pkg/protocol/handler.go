package protocol

import (
	"encoding/binary"
	"errors"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/config"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/storage"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/syslog"
)

const (
	// Command codes (PC → Device)
	CmdGetDisplayConfig = 0x01
	CmdSetDisplayConfig = 0x02
	CmdGetLogStats      = 0x03
	CmdReadLog          = 0x04
	CmdScroll           = 0x05
	CmdGetStorageStats  = 0x07
	CmdPing             = 0x08
	CmdFactoryReset     = 0x09
	CmdGetVersion       = 0x10
	CmdDiscover         = 0x11

	// Response status codes (Device → PC)
	StatusOK              = 0x00
	StatusError           = 0x01
	StatusInvalidCmd      = 0x02
	StatusInvalidData     = 0x03
	StatusNotFound        = 0x04
	StatusNoSpace         = 0x05
	StatusVersionMismatch = 0x06
	StatusCRCError        = 0x07
)

// Scroll directions of CmdScroll.
const (
	ScrollOlder  = 0
	ScrollNewer  = 1
	ScrollLatest = 2
)

// Firmware version reported by CmdGetVersion.
var (
	FirmwareMajor uint8 = 0
	FirmwareMinor uint8 = 1
)

// DiscoverReply is the CmdDiscover payload.
const DiscoverReply = "syslog"

// Handler processes protocol commands.
type Handler struct {
	storage *storage.Manager
	log     *syslog.Store
}

// NewHandler creates a new protocol handler. sm may be nil on boards without
// flash storage, in which case config commands answer StatusError.
func NewHandler(sm *storage.Manager, log *syslog.Store) *Handler {
	return &Handler{
		storage: sm,
		log:     log,
	}
}

// Handle processes a command frame and returns a response.
func (h *Handler) Handle(frame *Frame) *Response {
	switch frame.Cmd {
	case CmdPing:
		return h.handlePing(frame.Payload)
	case CmdGetDisplayConfig:
		return h.handleGetDisplayConfig()
	case CmdSetDisplayConfig:
		return h.handleSetDisplayConfig(frame.Payload)
	case CmdGetLogStats:
		return h.handleGetLogStats()
	case CmdReadLog:
		return h.handleReadLog(frame.Payload)
	case CmdScroll:
		return h.handleScroll(frame.Payload)
	case CmdGetStorageStats:
		return h.handleGetStorageStats()
	case CmdFactoryReset:
		return h.handleFactoryReset()
	case CmdGetVersion:
		return h.handleGetVersion()
	case CmdDiscover:
		return &Response{Status: StatusOK, Payload: []byte(DiscoverReply)}
	default:
		return &Response{Status: StatusInvalidCmd}
	}
}

// handlePing responds with the same payload (echo).
func (h *Handler) handlePing(payload []byte) *Response {
	return &Response{
		Status:  StatusOK,
		Payload: payload,
	}
}

// handleGetDisplayConfig returns the stored display configuration.
func (h *Handler) handleGetDisplayConfig() *Response {
	if h.storage == nil {
		return &Response{Status: StatusError}
	}

	var cfg config.Display
	if err := h.storage.LoadDisplay(&cfg); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return &Response{Status: StatusNotFound}
		case errors.Is(err, storage.ErrVersionMismatch):
			return &Response{Status: StatusVersionMismatch}
		}
		return &Response{Status: StatusError}
	}

	data, err := cfg.MarshalBinary()
	if err != nil {
		return &Response{Status: StatusError}
	}

	return &Response{
		Status:  StatusOK,
		Payload: data,
	}
}

// handleSetDisplayConfig validates and persists the display configuration.
// It takes effect on the next boot.
// Payload: [Display:16 bytes]
func (h *Handler) handleSetDisplayConfig(payload []byte) *Response {
	if len(payload) != config.Size {
		return &Response{Status: StatusInvalidData}
	}
	if h.storage == nil {
		return &Response{Status: StatusError}
	}

	var cfg config.Display
	if err := cfg.UnmarshalBinary(payload); err != nil {
		return &Response{Status: StatusInvalidData}
	}
	if cfg.Version != config.CurrentVersion {
		return &Response{Status: StatusVersionMismatch}
	}
	if err := cfg.Validate(); err != nil {
		return &Response{Status: StatusInvalidData}
	}

	if err := h.storage.SaveDisplay(&cfg); err != nil {
		return &Response{Status: StatusNoSpace}
	}

	h.log.MarkDirty()
	return &Response{Status: StatusOK}
}

// handleGetLogStats reports the ring state.
// Response: [Count:2][Cap:2][Total:4][Evicted:4][AnchorAge:2]
func (h *Handler) handleGetLogStats() *Response {
	payload := make([]byte, 14)
	binary.LittleEndian.PutUint16(payload[0:], uint16(h.log.Len()))
	binary.LittleEndian.PutUint16(payload[2:], uint16(h.log.Cap()))
	binary.LittleEndian.PutUint32(payload[4:], uint32(h.log.Total()))
	binary.LittleEndian.PutUint32(payload[8:], uint32(h.log.Evicted()))
	binary.LittleEndian.PutUint16(payload[12:], uint16(h.log.AnchorAge()))

	return &Response{
		Status:  StatusOK,
		Payload: payload,
	}
}

// handleReadLog returns one retained entry, age 0 being the newest.
// Payload: [Age:2]
// Response: [Seq:4][Text]
func (h *Handler) handleReadLog(payload []byte) *Response {
	if len(payload) != 2 {
		return &Response{Status: StatusInvalidData}
	}

	e, ok := h.log.At(int(binary.LittleEndian.Uint16(payload)))
	if !ok {
		return &Response{Status: StatusNotFound}
	}

	resp := make([]byte, 4, 4+len(e.Text))
	binary.LittleEndian.PutUint32(resp, uint32(e.Seq))
	resp = append(resp, e.Text...)

	return &Response{
		Status:  StatusOK,
		Payload: resp,
	}
}

// handleScroll moves the render anchor.
// Payload: [Dir:1][Steps:1]
// Response: [AnchorAge:2]
func (h *Handler) handleScroll(payload []byte) *Response {
	if len(payload) != 2 {
		return &Response{Status: StatusInvalidData}
	}

	steps := int(payload[1])
	switch payload[0] {
	case ScrollOlder:
		h.log.ScrollOlder(steps)
	case ScrollNewer:
		h.log.ScrollNewer(steps)
	case ScrollLatest:
		h.log.ScrollLatest()
	default:
		return &Response{Status: StatusInvalidData}
	}

	resp := make([]byte, 2)
	binary.LittleEndian.PutUint16(resp, uint16(h.log.AnchorAge()))
	return &Response{
		Status:  StatusOK,
		Payload: resp,
	}
}

// handleGetStorageStats returns storage statistics.
// Response: [Total:4][Used:4][Free:4][HasConfig:1]
func (h *Handler) handleGetStorageStats() *Response {
	if h.storage == nil {
		return &Response{Status: StatusError}
	}

	stats, err := h.storage.GetStats()
	if err != nil {
		return &Response{Status: StatusError}
	}

	payload := make([]byte, 13)
	binary.LittleEndian.PutUint32(payload[0:], uint32(stats.TotalSpace))
	binary.LittleEndian.PutUint32(payload[4:], uint32(stats.UsedSpace))
	binary.LittleEndian.PutUint32(payload[8:], uint32(stats.FreeSpace))
	if stats.HasConfig {
		payload[12] = 1
	}

	return &Response{
		Status:  StatusOK,
		Payload: payload,
	}
}

// handleFactoryReset wipes the stored configuration.
func (h *Handler) handleFactoryReset() *Response {
	if h.storage == nil {
		return &Response{Status: StatusError}
	}
	if err := h.storage.ForceWipe(); err != nil {
		return &Response{Status: StatusError}
	}
	return &Response{Status: StatusOK}
}

// handleGetVersion returns firmware and config version info.
// Response: [FirmwareVersionMajor:1][FirmwareVersionMinor:1][ConfigVersion:2]
func (h *Handler) handleGetVersion() *Response {
	payload := make([]byte, 4)
	payload[0] = FirmwareMajor
	payload[1] = FirmwareMinor
	binary.LittleEndian.PutUint16(payload[2:], config.CurrentVersion)

	return &Response{
		Status:  StatusOK,
		Payload: payload,
	}
}
