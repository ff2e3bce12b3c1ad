package protocol

import "testing"

func TestDescribe(t *testing.T) {
	tests := []struct {
		frame *Frame
		resp  *Response
		want  string
	}{
		{&Frame{Cmd: CmdPing, Payload: []byte{1, 2, 3}}, &Response{Status: StatusOK}, "rx Ping[3] -> OK"},
		{&Frame{Cmd: CmdReadLog, Payload: []byte{9, 0}}, &Response{Status: StatusNotFound}, "rx ReadLog[2] -> NotFnd"},
		{&Frame{Cmd: 0x7F}, &Response{Status: 0x42}, "rx Cmd7F[0] -> Sts42"},
	}
	for _, tt := range tests {
		if got := Describe(tt.frame, tt.resp); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		code    uint8
		payload []byte
		want    string
	}{
		{CmdGetLogStats, nil, "AA 03 0000 .."},
		{CmdPing, []byte{0xAB, 0xCD}, "AA 08 0200 ABCD .."},
		{CmdPing, []byte{1, 2, 3, 4, 5}, "AA 08 0500 01020304...."},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.code, tt.payload); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}
