package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/config"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/framebuffer"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/syslog"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/ui"
)

func runSim(t *testing.T, input string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(input), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

// asciiOf paints the expected frame directly and renders it like writeASCII.
func asciiOf(w, h int, rows map[int]string) string {
	fb := framebuffer.New(w, h, false)
	u := ui.New(fb, ui.Config{Foreground: framebuffer.White, Background: framebuffer.Black})
	u.Clear()
	u.Paint(0, 0, syslog.DefaultTitle, w, framebuffer.White)
	for y, text := range rows {
		u.Paint(0, y, text, w, framebuffer.White)
	}

	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if fb.At(x, y) != framebuffer.Black {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func TestASCIIPreview(t *testing.T) {
	out, errOut, code := runSim(t, "one\ntwo\nthree\n",
		"--ascii", "--no-timestamps", "-W", "64", "-H", "24")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, errOut)
	}

	want := asciiOf(64, 24, map[int]string{8: "two", 16: "three"})
	if out != want {
		t.Errorf("Unexpected preview:\n%s\nwant:\n%s", out, want)
	}
}

func TestTickTimestamps(t *testing.T) {
	out, _, code := runSim(t, "a\nb\n",
		"--ascii", "--tick", "5ms", "-W", "64", "-H", "24")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}

	want := asciiOf(64, 24, map[int]string{8: "[0]a", 16: "[5]b"})
	if out != want {
		t.Errorf("Unexpected preview:\n%s\nwant:\n%s", out, want)
	}
}

func TestScrollBack(t *testing.T) {
	out, _, code := runSim(t, "a\nb\nc\nd\n",
		"--ascii", "--no-timestamps", "--scroll", "2", "-W", "64", "-H", "24")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if want := asciiOf(64, 24, map[int]string{8: "a", 16: "b"}); out != want {
		t.Errorf("Unexpected preview:\n%s\nwant:\n%s", out, want)
	}
}

func TestCapacityEvicts(t *testing.T) {
	_, errOut, code := runSim(t, "1\n2\n3\n4\n5\n", "-v", "-c", "2")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if !strings.Contains(errOut, "kept=2") || !strings.Contains(errOut, "evicted=3") {
		t.Errorf("Expected kept=2 evicted=3 in %q", errOut)
	}
}

func TestPNGOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.png")
	_, errOut, code := runSim(t, "hello\n", "-W", "64", "-H", "24", "-s", "3", "-o", path)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, errOut)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 192 || b.Dy() != 72 {
		t.Errorf("Expected 192x72, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRotatedPNGSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.png")
	_, _, code := runSim(t, "x\n", "-W", "40", "-H", "100", "-s", "1", "-r", "-o", path)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	f, _ := os.Open(path)
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	// The PNG shows the panel in its native orientation.
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 100 {
		t.Errorf("Expected 40x100, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestConfigFile(t *testing.T) {
	cfg := config.Default()
	cfg.Capacity = 3
	cfg.Set(config.FlagNoTimestamps, true)
	data, _ := cfg.MarshalBinary()
	path := filepath.Join(t.TempDir(), "display.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, errOut, code := runSim(t, "1\n2\n3\n4\n", "-v", "--config", path)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, errOut)
	}
	if !strings.Contains(errOut, "kept=3") {
		t.Errorf("Expected the stored capacity to apply, got %q", errOut)
	}
}

func TestInvalidArguments(t *testing.T) {
	tests := [][]string{
		{"-c", "0"},
		{"-W", "0"},
		{"--config", "/nonexistent/display.bin"},
		{"--bogus"},
	}
	for _, args := range tests {
		if _, _, code := runSim(t, "", args...); code == 0 {
			t.Errorf("%v: expected a non-zero exit", args)
		}
	}
}

func TestVersion(t *testing.T) {
	out, _, code := runSim(t, "", "--version")
	if code != 0 || !strings.HasPrefix(out, "syslogsim version ") {
		t.Errorf("Unexpected version output %q (exit %d)", out, code)
	}
}
