package storage

import (
	"errors"
	"os"
	"testing"

	"github.com/tuffrabit/tinygo-syslog-rp2040/pkg/config"

	"tinygo.org/x/tinyfs"
)

func newTestStorage(t *testing.T) (*Manager, *tinyfs.MemBlockDevice) {
	// Memory-backed RP2040 flash: 256 byte pages, 4096 byte blocks, 64 blocks.
	blockDev := tinyfs.NewMemoryDevice(256, 4096, 64)

	mgr, err := New(blockDev, true)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	return mgr, blockDev
}

func TestDisplaySaveLoad(t *testing.T) {
	mgr, _ := newTestStorage(t)
	defer mgr.Close()

	original := config.Default()
	original.Capacity = 48
	original.Foreground = 0x07E0
	original.Set(config.FlagRotate, true)

	if err := mgr.SaveDisplay(&original); err != nil {
		t.Fatalf("SaveDisplay failed: %v", err)
	}

	var loaded config.Display
	if err := mgr.LoadDisplay(&loaded); err != nil {
		t.Fatalf("LoadDisplay failed: %v", err)
	}

	if loaded.Version != config.CurrentVersion {
		t.Errorf("Version not set: expected %d, got %d", config.CurrentVersion, loaded.Version)
	}
	if loaded != original {
		t.Errorf("Expected %+v, got %+v", original, loaded)
	}
}

func TestDisplayNotFound(t *testing.T) {
	mgr, _ := newTestStorage(t)
	defer mgr.Close()

	var cfg config.Display
	if err := mgr.LoadDisplay(&cfg); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if mgr.HasDisplay() {
		t.Error("Expected no display config on a fresh filesystem")
	}
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	mgr, _ := newTestStorage(t)
	defer mgr.Close()

	cfg := config.Default()
	cfg.Capacity = 0
	if err := mgr.SaveDisplay(&cfg); err != config.ErrInvalidCapacity {
		t.Errorf("Expected ErrInvalidCapacity, got %v", err)
	}
	if mgr.HasDisplay() {
		t.Error("Invalid config must not be written")
	}
}

func TestAtomicWriteReplaces(t *testing.T) {
	mgr, _ := newTestStorage(t)
	defer mgr.Close()

	first := config.Default()
	first.Capacity = 8
	mgr.SaveDisplay(&first)

	second := config.Default()
	second.Capacity = 16
	mgr.SaveDisplay(&second)

	var loaded config.Display
	mgr.LoadDisplay(&loaded)
	if loaded.Capacity != 16 {
		t.Errorf("Expected capacity 16, got %d", loaded.Capacity)
	}
}

func TestPersistsAcrossRemount(t *testing.T) {
	mgr, blockDev := newTestStorage(t)

	cfg := config.Default()
	cfg.Set(config.FlagLargeUI, true)
	if err := mgr.SaveDisplay(&cfg); err != nil {
		t.Fatalf("SaveDisplay failed: %v", err)
	}
	mgr.Close()

	mgr2, err := New(blockDev, false)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	defer mgr2.Close()

	var loaded config.Display
	if err := mgr2.LoadDisplay(&loaded); err != nil {
		t.Fatalf("LoadDisplay failed: %v", err)
	}
	if !loaded.Has(config.FlagLargeUI) {
		t.Error("Expected FlagLargeUI to survive a remount")
	}
}

func TestVersionMismatchWipe(t *testing.T) {
	mgr, blockDev := newTestStorage(t)

	// Write a record from a future config format behind SaveDisplay's back.
	stale := config.Default()
	stale.Version = config.CurrentVersion + 1
	data, _ := stale.MarshalBinary()
	if err := mgr.ensureDir(); err != nil {
		t.Fatalf("ensureDir failed: %v", err)
	}
	if err := mgr.atomicWrite(displayFile, data); err != nil {
		t.Fatalf("atomicWrite failed: %v", err)
	}

	var cfg config.Display
	if err := mgr.LoadDisplay(&cfg); !errors.Is(err, ErrVersionMismatch) {
		t.Errorf("Expected ErrVersionMismatch, got %v", err)
	}
	mgr.Close()

	mgr2, err := New(blockDev, false)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	defer mgr2.Close()

	if mgr2.HasDisplay() {
		t.Error("Stale record should be wiped at boot")
	}
	stats, _ := mgr2.GetStats()
	if !stats.Wiped {
		t.Error("Expected stats to report the boot wipe")
	}
}

func TestBootCleanupRemovesTempFiles(t *testing.T) {
	mgr, blockDev := newTestStorage(t)

	if err := mgr.ensureDir(); err != nil {
		t.Fatalf("ensureDir failed: %v", err)
	}
	// Simulate a write interrupted before the rename.
	f, err := mgr.fs.OpenFile(displayFile+tempSuffix, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	f.Write([]byte{1, 2, 3})
	f.Close()
	mgr.Close()

	mgr2, err := New(blockDev, false)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	defer mgr2.Close()

	entries, err := mgr2.readDir(configDir)
	if err != nil {
		t.Fatalf("readDir failed: %v", err)
	}
	for _, e := range entries {
		t.Errorf("Expected empty config dir, found %q", e.Name())
	}
}

func TestFactoryReset(t *testing.T) {
	mgr, _ := newTestStorage(t)
	defer mgr.Close()

	cfg := config.Default()
	mgr.SaveDisplay(&cfg)

	if err := mgr.ForceWipe(); err != nil {
		t.Fatalf("ForceWipe failed: %v", err)
	}
	if mgr.HasDisplay() {
		t.Error("Expected display config to be wiped")
	}

	// Wiping twice is fine.
	if err := mgr.ForceWipe(); err != nil {
		t.Errorf("Second ForceWipe failed: %v", err)
	}
}

func TestStorageStats(t *testing.T) {
	mgr, blockDev := newTestStorage(t)
	defer mgr.Close()

	stats1, err := mgr.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats1.HasConfig {
		t.Error("Expected no config initially")
	}
	if stats1.TotalSpace != blockDev.Size() {
		t.Errorf("Expected total %d, got %d", blockDev.Size(), stats1.TotalSpace)
	}

	cfg := config.Default()
	mgr.SaveDisplay(&cfg)

	stats2, _ := mgr.GetStats()
	if !stats2.HasConfig {
		t.Error("Expected config after save")
	}
	if stats2.UsedSpace <= stats1.UsedSpace {
		t.Errorf("Expected usage to grow, got %d then %d", stats1.UsedSpace, stats2.UsedSpace)
	}
	if stats2.FreeSpace != stats2.TotalSpace-stats2.UsedSpace {
		t.Error("FreeSpace must equal TotalSpace minus UsedSpace")
	}
}

func BenchmarkDisplaySave(b *testing.B) {
	blockDev := tinyfs.NewMemoryDevice(256, 4096, 64)
	mgr, err := New(blockDev, true)
	if err != nil {
		b.Fatal(err)
	}
	defer mgr.Close()

	cfg := config.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mgr.SaveDisplay(&cfg)
	}
}
