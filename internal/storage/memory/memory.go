package memory

import (
	"sync"

	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/MikhailRaia/shorturls/internal/storage"
)

// Storage is the in-memory shortcode store. It lives for the process lifetime.
type Storage struct {
	entries map[string]model.ShortURLEntry
	mutex   sync.RWMutex
}

// NewStorage creates an empty in-memory storage.
func NewStorage() *Storage {
	return &Storage{
		entries: make(map[string]model.ShortURLEntry),
	}
}

// Put inserts the entry without checking for an existing key.
func (s *Storage) Put(code string, entry model.ShortURLEntry) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.entries[code] = entry
}

// Get returns the entry for code, expired or not.
func (s *Storage) Get(code string) (model.ShortURLEntry, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, found := s.entries[code]
	if !found {
		return model.ShortURLEntry{}, storage.ErrNotFound
	}

	return entry, nil
}

// Exists reports whether code is a key in the storage.
func (s *Storage) Exists(code string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, found := s.entries[code]
	return found
}

// Len returns the number of stored entries, including expired ones.
func (s *Storage) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.entries)
}

// DeleteExpired removes every entry whose expiry is before now and returns
// how many were removed. Lookups never call this; only the sweeper does.
func (s *Storage) DeleteExpired(now int64) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := 0
	for code, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, code)
			removed++
		}
	}

	return removed
}
