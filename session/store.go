package session

import (
	"errors"
	"maps"
	"sync"
	"time"
)

// ErrNotFound is returned by stores when there's no session with such id.
var ErrNotFound = errors.New("session not found")

// Data holds the session values.
type Data map[string]any

// Store persists sessions between transactions. Sessions saved with a positive ttl
// expire after it and are reported as not found from then on.
type Store interface {
	Load(id string) (Data, error)
	Save(id string, data Data, ttl time.Duration) error
	Delete(id string) error
}

// Sweeper is implemented by stores able to remove the expired sessions in bulk. Returns
// the number of sessions removed.
type Sweeper interface {
	Sweep(now time.Time) (int, error)
}

// Expiry returns the moment a session saved at now with the ttl expires. Zero means
// never.
func Expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}

	return now.Add(ttl)
}

// Expired tells whether the expiry is reached.
func Expired(expires, now time.Time) bool {
	return !expires.IsZero() && !now.Before(expires)
}

type memoryEntry struct {
	data    Data
	expires time.Time
}

// Memory is an in-process Store. Sessions are lost on restart.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *Memory) Load(id string) (Data, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, found := m.sessions[id]
	if !found || Expired(entry.expires, m.now()) {
		return nil, ErrNotFound
	}

	return maps.Clone(entry.data), nil
}

func (m *Memory) Save(id string, data Data, ttl time.Duration) error {
	m.mu.Lock()
	m.sessions[id] = memoryEntry{
		data:    maps.Clone(data),
		expires: Expiry(m.now(), ttl),
	}
	m.mu.Unlock()

	return nil
}

func (m *Memory) Delete(id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	return nil
}

// Sweep implements Sweeper.
func (m *Memory) Sweep(now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, entry := range m.sessions {
		if Expired(entry.expires, now) {
			delete(m.sessions, id)
			removed++
		}
	}

	return removed, nil
}

// Len returns the number of stored sessions, expired but not yet swept ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}
