// Package storage persists the display settings on LittleFS.
// It handles atomic writes, version checking, and cleanup of temporary files.
// The log itself is never written to flash.
package storage

import (
	"errors"
	"os"
	"path"
	"strings"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/config"

	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/littlefs"
)

const (
	configDir   = "/config"
	displayFile = "/config/display.bin"
	tempSuffix  = ".tmp"

	// Rough LittleFS cost of one small file plus the config directory.
	fileOverhead = 32
	dirOverhead  = 100
)

var (
	ErrNotFound        = errors.New("display config not found")
	ErrInvalidConfig   = errors.New("invalid display config data")
	ErrVersionMismatch = errors.New("config version mismatch")
)

// Manager handles config persistence using LittleFS.
type Manager struct {
	fs       *littlefs.LFS
	blockDev tinyfs.BlockDevice
	mounted  bool
	wiped    bool
}

// Stats provides information about storage usage.
type Stats struct {
	TotalSpace int64
	UsedSpace  int64
	FreeSpace  int64
	HasConfig  bool
	Wiped      bool // a stale record was removed at boot
}

// New initializes the storage system with the given block device.
// It mounts the filesystem and performs boot-time cleanup.
// If format is true and mount fails, it will format the filesystem.
func New(blockDev tinyfs.BlockDevice, format bool) (*Manager, error) {
	lfs := littlefs.New(blockDev)

	// Conservative settings for RP2040 flash.
	lfs.Configure(&littlefs.Config{
		CacheSize:     512,
		LookaheadSize: 128,
	})

	if err := lfs.Mount(); err != nil {
		if !format {
			return nil, err
		}
		if err := lfs.Format(); err != nil {
			return nil, err
		}
		if err := lfs.Mount(); err != nil {
			return nil, err
		}
	}

	m := &Manager{
		fs:       lfs,
		blockDev: blockDev,
		mounted:  true,
	}

	// A failed cleanup leaves stale temp files behind but the record is
	// still readable.
	_ = m.bootCleanup()

	stale, err := m.checkVersion()
	if err != nil {
		stale = false
	}
	if stale {
		if err := m.wipe(); err != nil {
			return nil, err
		}
		m.wiped = true
	}

	return m, nil
}

// Close unmounts the filesystem.
func (m *Manager) Close() error {
	if m.mounted {
		m.mounted = false
		return m.fs.Unmount()
	}
	return nil
}

// bootCleanup removes temporary files left over from interrupted writes.
func (m *Manager) bootCleanup() error {
	entries, err := m.readDir(configDir)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, tempSuffix) {
			m.fs.Remove(path.Join(configDir, name))
		}
	}
	return nil
}

func (m *Manager) readDir(dirPath string) ([]os.FileInfo, error) {
	f, err := m.fs.Open(dirPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !f.IsDir() {
		return nil, errors.New("not a directory")
	}

	return f.Readdir(-1)
}

// checkVersion reports whether the stored record was written by a
// different config format.
func (m *Manager) checkVersion() (bool, error) {
	cfg, err := m.readDisplay()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return cfg.Version != config.CurrentVersion, nil
}

func (m *Manager) wipe() error {
	err := m.fs.Remove(displayFile)
	if err != nil && !isNotExist(err) {
		return err
	}
	return nil
}

func (m *Manager) ensureDir() error {
	if err := m.fs.Mkdir(configDir, 0755); err != nil && !isExist(err) {
		return err
	}
	return nil
}

// isExist checks if an error is "already exists".
// LittleFS errors don't always match os.IsExist, so we check the message too.
func isExist(err error) bool {
	if err == nil {
		return false
	}
	if os.IsExist(err) {
		return true
	}
	return strings.Contains(err.Error(), "already exists")
}

// isNotExist is the missing-entry counterpart of isExist.
func isNotExist(err error) bool {
	if err == nil {
		return false
	}
	if os.IsNotExist(err) {
		return true
	}
	return strings.Contains(err.Error(), "No directory entry")
}

func (m *Manager) readDisplay() (config.Display, error) {
	var cfg config.Display

	f, err := m.fs.Open(displayFile)
	if err != nil {
		if isNotExist(err) {
			return cfg, ErrNotFound
		}
		return cfg, err
	}
	defer f.Close()

	buf := make([]byte, config.Size)
	n, err := f.Read(buf)
	if err != nil {
		return cfg, err
	}
	if n != config.Size {
		return cfg, ErrInvalidConfig
	}
	if err := cfg.UnmarshalBinary(buf); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDisplay loads the display configuration.
// It returns ErrNotFound when nothing has been saved yet and
// ErrVersionMismatch for a record from another config format.
func (m *Manager) LoadDisplay(cfg *config.Display) error {
	loaded, err := m.readDisplay()
	if err != nil {
		return err
	}
	if loaded.Version != config.CurrentVersion {
		return ErrVersionMismatch
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	*cfg = loaded
	return nil
}

// SaveDisplay validates and saves the display configuration atomically.
func (m *Manager) SaveDisplay(cfg *config.Display) error {
	cfg.Version = config.CurrentVersion
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := m.ensureDir(); err != nil {
		return err
	}

	data, err := cfg.MarshalBinary()
	if err != nil {
		return err
	}

	return m.atomicWrite(displayFile, data)
}

// HasDisplay reports whether a display config is stored.
func (m *Manager) HasDisplay() bool {
	f, err := m.fs.Open(displayFile)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// GetStats returns storage statistics.
func (m *Manager) GetStats() (*Stats, error) {
	// LittleFS has no direct free space call, so usage is estimated.
	has := m.HasDisplay()
	used := int64(dirOverhead)
	if has {
		used += config.Size + fileOverhead
	}

	total := m.blockDev.Size()

	return &Stats{
		TotalSpace: total,
		UsedSpace:  used,
		FreeSpace:  total - used,
		HasConfig:  has,
		Wiped:      m.wiped,
	}, nil
}

// atomicWrite writes data to a temporary file, syncs it, then renames.
// The original file is never in a partially written state.
func (m *Manager) atomicWrite(filepath string, data []byte) error {
	tempPath := filepath + tempSuffix

	m.fs.Remove(tempPath)

	f, err := m.fs.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		m.fs.Remove(tempPath)
		return err
	}

	if syncer, ok := f.(interface{ Sync() error }); ok {
		if err := syncer.Sync(); err != nil {
			f.Close()
			m.fs.Remove(tempPath)
			return err
		}
	}

	if err := f.Close(); err != nil {
		m.fs.Remove(tempPath)
		return err
	}

	// LittleFS rename doesn't replace.
	m.fs.Remove(filepath)

	if err := m.fs.Rename(tempPath, filepath); err != nil {
		m.fs.Remove(tempPath)
		return err
	}

	return nil
}

// ForceWipe erases the stored display config.
func (m *Manager) ForceWipe() error {
	return m.wipe()
}
