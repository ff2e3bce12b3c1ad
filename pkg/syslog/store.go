// Package syslog keeps the bounded diagnostic log shown on the panel and
// renders it most-recent-first.
//
// Entries live in a fixed ring of slots. When the ring is full the oldest
// entry is evicted before the new one is written, so the store never holds
// more than its capacity. Rendering starts at the anchor, which follows the
// newest entry unless the reader has scrolled back.
package syslog

import (
	"iter"
	"sync"
)

// DefaultCapacity is the number of entries kept when none is configured.
const DefaultCapacity = 32

// Entry is one logged line. Entries are values; changing a copy does not
// affect the store.
type Entry struct {
	Seq  uint64 // 1 for the first entry ever appended
	Text string
}

// Store is a fixed-capacity, append-only log.
//
// Store is safe for concurrent use. Iterators returned by FromAnchor and All
// hold the store lock while they run, so their loop bodies must not call
// back into the store.
type Store struct {
	mu      sync.Mutex
	slots   []Entry
	head    int // slot of the oldest entry
	count   int
	anchor  int // slot rendering starts from, -1 when empty
	dirty   bool
	seq     uint64
	evicted uint64
}

// NewStore creates an empty store. A capacity of zero or less selects
// DefaultCapacity. The store starts dirty so the first render paints the
// empty panel.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		slots:  make([]Entry, capacity),
		anchor: -1,
		dirty:  true,
	}
}

// Append adds text as the newest entry, evicting the oldest entry first if
// the store is full. The anchor jumps to the new entry.
func (s *Store) Append(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count == len(s.slots) {
		s.evictHead()
	}
	s.seq++
	tail := s.slot(s.count)
	s.slots[tail] = Entry{Seq: s.seq, Text: text}
	s.count++
	s.anchor = tail
	s.dirty = true
}

// evictHead drops the oldest entry. Callers hold mu.
func (s *Store) evictHead() {
	if s.count == 0 {
		return
	}
	s.slots[s.head] = Entry{}
	s.head = (s.head + 1) % len(s.slots)
	s.count--
	s.evicted++
	if s.count == 0 {
		s.anchor = -1
	}
}

// slot returns the slot index of the entry at position i, 0 being oldest.
func (s *Store) slot(i int) int {
	return (s.head + i) % len(s.slots)
}

// position returns how far slot is from head, 0 being oldest.
func (s *Store) position(slot int) int {
	return (slot - s.head + len(s.slots)) % len(s.slots)
}

// fromAnchor walks from the anchor toward older entries. Callers hold mu.
func (s *Store) fromAnchor() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if s.anchor < 0 {
			return
		}
		for i := s.position(s.anchor); i >= 0; i-- {
			if !yield(s.slots[s.slot(i)]) {
				return
			}
		}
	}
}

// FromAnchor returns the entries from the anchor back to the oldest one.
// The sequence can be ranged over any number of times.
func (s *Store) FromAnchor() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.fromAnchor()(yield)
	}
}

// All returns every entry from oldest to newest.
func (s *Store) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := 0; i < s.count; i++ {
			if !yield(s.slots[s.slot(i)]) {
				return
			}
		}
	}
}

// Entries returns a copy of the retained entries, oldest first.
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, s.Len())
	for e := range s.All() {
		out = append(out, e)
	}
	return out
}

// At returns the entry age steps back from the newest one.
func (s *Store) At(age int) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if age < 0 || age >= s.count {
		return Entry{}, false
	}
	return s.slots[s.slot(s.count-1-age)], true
}

// Len returns the number of retained entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Cap returns the capacity.
func (s *Store) Cap() int {
	return len(s.slots)
}

// Total returns the number of entries ever appended.
func (s *Store) Total() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Evicted returns the number of entries dropped to make room.
func (s *Store) Evicted() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evicted
}

// Dirty reports whether the panel is stale.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// ClearDirty marks the panel as up to date.
func (s *Store) ClearDirty() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

// MarkDirty forces the next render to repaint.
func (s *Store) MarkDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// Anchor returns the entry rendering starts from.
func (s *Store) Anchor() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.anchor < 0 {
		return Entry{}, false
	}
	return s.slots[s.anchor], true
}

// AnchorAge returns how many entries the anchor is behind the newest one.
// It is 0 when following the latest entry or when the store is empty.
func (s *Store) AnchorAge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anchorAge()
}

func (s *Store) anchorAge() int {
	if s.anchor < 0 {
		return 0
	}
	return s.count - 1 - s.position(s.anchor)
}

// ScrollOlder moves the anchor n entries back, stopping at the oldest one.
// It reports whether the anchor moved.
func (s *Store) ScrollOlder(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveAnchor(s.anchorAge() + n)
}

// ScrollNewer moves the anchor n entries forward, stopping at the newest.
// It reports whether the anchor moved.
func (s *Store) ScrollNewer(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveAnchor(s.anchorAge() - n)
}

// ScrollLatest puts the anchor back on the newest entry.
func (s *Store) ScrollLatest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveAnchor(0)
}

// moveAnchor sets the anchor to the given age, clamped to the retained
// range, and marks the store dirty if it changed. Callers hold mu.
func (s *Store) moveAnchor(age int) bool {
	if s.count == 0 {
		return false
	}
	if age < 0 {
		age = 0
	}
	if age > s.count-1 {
		age = s.count - 1
	}
	slot := s.slot(s.count - 1 - age)
	if slot == s.anchor {
		return false
	}
	s.anchor = slot
	s.dirty = true
	return true
}
