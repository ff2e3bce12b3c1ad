// Command syslogsim previews the log panel on the host. It appends input
// lines to a log store, renders it once into a memory panel, and writes the
// result as an upscaled PNG and/or an ASCII picture.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/image/draw"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/config"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/framebuffer"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/panel"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/syslog"
	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/ui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options collects the parsed command line.
type options struct {
	configPath   string
	capacity     int
	width        int
	height       int
	rotate       bool
	large        bool
	noTimestamps bool
	title        string
	scroll       int
	tick         time.Duration
	scale        int
	out          string
	ascii        bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		opts        options
		showVersion bool
		showHelp    bool
		verbose     bool
	)

	fs := pflag.NewFlagSet("syslogsim", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Read settings from a display.bin record (flags below override it)")
	fs.IntVarP(&opts.capacity, "capacity", "c", int(config.DefaultCapacity), "Number of retained log entries")
	fs.IntVarP(&opts.width, "width", "W", 240, "Panel width in pixels")
	fs.IntVarP(&opts.height, "height", "H", 135, "Panel height in pixels")
	fs.BoolVarP(&opts.rotate, "rotate", "r", false, "Rotate the UI 90 degrees")
	fs.BoolVarP(&opts.large, "large", "l", false, "Use the enlarged LCD-segment look")
	fs.BoolVar(&opts.noTimestamps, "no-timestamps", false, "Omit the [ms] entry prefix")
	fs.StringVarP(&opts.title, "title", "t", "", "Title row text (default depends on the UI mode)")
	fs.IntVar(&opts.scroll, "scroll", 0, "Scroll this many entries back before rendering")
	fs.DurationVar(&opts.tick, "tick", 0, "Stamp line i with i*tick instead of wall time")
	fs.IntVarP(&opts.scale, "scale", "s", 4, "PNG upscale factor")
	fs.StringVarP(&opts.out, "out", "o", "", "Write a PNG preview to this file")
	fs.BoolVarP(&opts.ascii, "ascii", "a", false, "Print an ASCII preview to stdout")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showHelp {
		fmt.Fprintln(stderr, "Usage: syslogsim [flags] [file ...]")
		fs.PrintDefaults()
		return 0
	}
	if showVersion {
		fmt.Fprintf(stdout, "syslogsim version %s\n", version)
		return 0
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := displayConfig(fs, opts)
	if err != nil {
		log.Error("config", "err", err)
		return 1
	}
	if opts.width <= 0 || opts.height <= 0 || opts.scale <= 0 {
		log.Error("width, height and scale must be positive")
		return 1
	}

	sim := newSim(cfg, opts)

	n, err := sim.feed(stdin, fs.Args())
	if err != nil {
		log.Error("read input", "err", err)
		return 1
	}
	log.Info("appended", "lines", n, "kept", sim.store.Len(), "evicted", sim.store.Evicted())

	if opts.scroll > 0 {
		sim.store.ScrollOlder(opts.scroll)
	}
	if err := sim.renderer.Render(sim.store); err != nil {
		log.Error("render", "err", err)
		return 1
	}

	if opts.ascii {
		if err := sim.writeASCII(stdout); err != nil {
			log.Error("ascii", "err", err)
			return 1
		}
	}
	if opts.out != "" {
		if err := sim.writePNG(opts.out, opts.scale); err != nil {
			log.Error("png", "err", err)
			return 1
		}
		log.Info("wrote", "file", opts.out)
	}
	return 0
}

// displayConfig starts from the defaults or a stored record and applies
// the flags that were set explicitly.
func displayConfig(fs *pflag.FlagSet, opts options) (config.Display, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		f, err := os.Open(opts.configPath)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		if _, err := cfg.ReadFrom(f); err != nil {
			return cfg, fmt.Errorf("%s: %w", opts.configPath, err)
		}
	}

	if opts.configPath == "" || fs.Changed("capacity") {
		cfg.Capacity = uint16(min(max(opts.capacity, 0), 0xFFFF))
	}
	if fs.Changed("rotate") {
		cfg.Set(config.FlagRotate, opts.rotate)
	}
	if fs.Changed("large") {
		cfg.Set(config.FlagLargeUI, opts.large)
	}
	if fs.Changed("no-timestamps") {
		cfg.Set(config.FlagNoTimestamps, opts.noTimestamps)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// sim is the host stand-in for the firmware's display pipeline.
type sim struct {
	ui       *ui.UI
	mem      *panel.Memory
	store    *syslog.Store
	logger   *syslog.Logger
	renderer *syslog.Renderer
	lines    int
}

func newSim(cfg config.Display, opts options) *sim {
	fb := framebuffer.New(opts.width, opts.height, cfg.Has(config.FlagRotate))
	s := &sim{
		ui:    ui.New(fb, ui.FromDisplay(cfg)),
		mem:   panel.NewMemory(),
		store: syslog.NewStore(int(cfg.Capacity)),
	}

	logOpts := []syslog.Option{syslog.WithTimestamps(!cfg.Has(config.FlagNoTimestamps))}
	if opts.tick > 0 {
		logOpts = append(logOpts, syslog.WithClock(func() time.Duration {
			return time.Duration(s.lines) * opts.tick
		}))
	}
	s.logger = syslog.NewLogger(s.store, logOpts...)

	s.renderer = syslog.NewRenderer(s.ui, s.mem)
	switch {
	case opts.title != "":
		s.renderer.SetTitle(opts.title)
	case s.ui.Mode() == ui.ModeLarge:
		s.renderer.SetTitle(syslog.LargeTitle)
	}
	return s
}

// feed appends every line of the named files, or of stdin when there are
// none, and returns the number of lines read.
func (s *sim) feed(stdin io.Reader, files []string) (int, error) {
	if len(files) == 0 {
		return s.feedReader(stdin)
	}
	total := 0
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return total, err
		}
		n, err := s.feedReader(f)
		f.Close()
		total += n
		if err != nil {
			return total, fmt.Errorf("%s: %w", name, err)
		}
	}
	return total, nil
}

func (s *sim) feedReader(r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		s.logger.Print(strings.TrimRight(sc.Text(), "\r"))
		s.lines++
		n++
	}
	return n, sc.Err()
}

// lit reports whether a physical pixel shows ink.
func (s *sim) lit(c framebuffer.Color) bool {
	if s.ui.Mode() == ui.ModeLarge {
		return c == ui.LargeDefaults.Palette.On
	}
	return c != s.ui.Background()
}

// writeASCII prints the captured frame, one character per pixel.
func (s *sim) writeASCII(w io.Writer) error {
	width, height := s.mem.Size()
	bw := bufio.NewWriter(w)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if s.lit(s.mem.At(x, y)) {
				bw.WriteByte('#')
			} else {
				bw.WriteByte('.')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// snapshot converts the captured frame to an RGBA image.
func (s *sim) snapshot() *image.RGBA {
	width, height := s.mem.Size()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, s.mem.At(x, y).RGBA())
		}
	}
	return img
}

func (s *sim) writePNG(path string, scale int) error {
	src := s.snapshot()
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
