package stores

import (
	"sort"
	"sync"
	"time"

	"emontx-aggregator/internal/models"
)

type windowEntry struct {
	ts      time.Time
	payload models.Payload
}

// WindowedStore keeps, per category, the payloads received inside the
// sliding window ordered by arrival time.
//
// Entries are keyed by timestamp: inserting at a timestamp already present
// replaces that entry's payload. Eviction runs for all categories under one
// lock, so a reader never observes a store that is evicted for some
// categories and not for others.
type WindowedStore struct {
	mu      sync.RWMutex
	entries map[models.Category][]windowEntry
}

func NewWindowedStore() *WindowedStore {
	return &WindowedStore{entries: make(map[models.Category][]windowEntry)}
}

// Insert adds payload at ts for category, overwriting any entry with the
// exact same timestamp. Out-of-order timestamps are placed in order.
func (s *WindowedStore) Insert(category models.Category, ts time.Time, payload models.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertLocked(category, ts, payload)
}

// InsertRecord inserts every category payload of rec at rec.ReceivedAt.
func (s *WindowedStore) InsertRecord(rec models.TimestampedRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for category, payload := range rec.Record {
		s.insertLocked(category, rec.ReceivedAt, payload)
	}
}

func (s *WindowedStore) insertLocked(category models.Category, ts time.Time, payload models.Payload) {
	entries := s.entries[category]

	// Fast path: arrival order.
	n := len(entries)
	if n == 0 || entries[n-1].ts.Before(ts) {
		s.entries[category] = append(entries, windowEntry{ts: ts, payload: payload})
		return
	}

	i := sort.Search(n, func(i int) bool { return !entries[i].ts.Before(ts) })
	if i < n && entries[i].ts.Equal(ts) {
		entries[i].payload = payload
		return
	}
	entries = append(entries, windowEntry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = windowEntry{ts: ts, payload: payload}
	s.entries[category] = entries
}

// EvictOlderThan removes, in every category, the entries strictly older than
// cutoff. An entry stamped exactly at cutoff is kept. It returns the number
// of entries removed.
func (s *WindowedStore) EvictOlderThan(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for category, entries := range s.entries {
		i := sort.Search(len(entries), func(i int) bool { return !entries[i].ts.Before(cutoff) })
		if i == 0 {
			continue
		}
		removed += i
		if i == len(entries) {
			delete(s.entries, category)
			continue
		}
		kept := make([]windowEntry, len(entries)-i)
		copy(kept, entries[i:])
		s.entries[category] = kept
	}
	return removed
}

// RangeAll calls fn for every entry of every category, oldest first within a
// category, under a single read lock. fn must not modify payload or call back
// into the store.
func (s *WindowedStore) RangeAll(fn func(category models.Category, ts time.Time, payload models.Payload)) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for category, entries := range s.entries {
		for _, entry := range entries {
			fn(category, entry.ts, entry.payload)
		}
	}
}

// Len returns the number of entries held for category.
func (s *WindowedStore) Len(category models.Category) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries[category])
}
