package protocol

import (
	"fmt"
	"strings"
)

// maxHexBytes limits the payload bytes shown by FormatBytes.
const maxHexBytes = 4

// Describe summarises one exchange in a single short log line, for example
// "rx Ping[3] -> OK".
func Describe(frame *Frame, resp *Response) string {
	return fmt.Sprintf("rx %s[%d] -> %s", CommandName(frame.Cmd), len(frame.Payload), StatusName(resp.Status))
}

// FormatBytes renders the head of a packet as hex.
// Format: AA CODE LEN_LO LEN_HI [PAYLOAD] ..
// The CRC is not recomputed; it shows as dots.
func FormatBytes(code uint8, payload []byte) string {
	var b strings.Builder

	n := len(payload)
	fmt.Fprintf(&b, "%02X %02X %02X%02X ", SyncByte, code, byte(n), byte(n>>8))

	for i := 0; i < n && i < maxHexBytes; i++ {
		fmt.Fprintf(&b, "%02X", payload[i])
	}
	if n > maxHexBytes {
		b.WriteString("..")
	} else if n > 0 {
		b.WriteString(" ")
	}

	b.WriteString("..")
	return b.String()
}

// CommandName returns a short name for a command code.
func CommandName(cmd uint8) string {
	switch cmd {
	case CmdGetDisplayConfig:
		return "GetCfg"
	case CmdSetDisplayConfig:
		return "SetCfg"
	case CmdGetLogStats:
		return "LogStat"
	case CmdReadLog:
		return "ReadLog"
	case CmdScroll:
		return "Scroll"
	case CmdGetStorageStats:
		return "GetStor"
	case CmdPing:
		return "Ping"
	case CmdFactoryReset:
		return "FctRst"
	case CmdGetVersion:
		return "GetVer"
	case CmdDiscover:
		return "Discvr"
	default:
		return fmt.Sprintf("Cmd%02X", cmd)
	}
}

// StatusName returns a short name for a status code.
func StatusName(status uint8) string {
	switch status {
	case StatusOK:
		return "OK"
	case StatusError:
		return "Err"
	case StatusInvalidCmd:
		return "InvCmd"
	case StatusInvalidData:
		return "InvData"
	case StatusNotFound:
		return "NotFnd"
	case StatusNoSpace:
		return "NoSpace"
	case StatusVersionMismatch:
		return "VerMis"
	case StatusCRCError:
		return "CRC"
	default:
		return fmt.Sprintf("Sts%02X", status)
	}
}
