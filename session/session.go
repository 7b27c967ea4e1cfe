package session

import (
	"errors"
	"sort"
	"time"

	"github.com/dchest/uniuri"
)

// Session is the per-transaction view of the user's session. It's loaded when the
// request is created and written back through the store once the request is done.
type Session struct {
	id      string
	data    Data
	store   Store
	ttl     time.Duration
	fresh   bool
	dirty   bool
	deleted bool
}

// Open loads the session by the id. If the id is empty or unknown to the store, a fresh
// session with a newly generated id of idLength characters is started instead. Saved
// sessions are kept in the store for ttl.
func Open(store Store, id string, idLength int, ttl time.Duration) (*Session, error) {
	if len(id) > 0 {
		data, err := store.Load(id)
		switch {
		case err == nil:
			if data == nil {
				data = make(Data)
			}

			return &Session{id: id, data: data, store: store, ttl: ttl}, nil
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
	}

	return &Session{
		id:    uniuri.NewLen(idLength),
		data:  make(Data),
		store: store,
		ttl:   ttl,
		fresh: true,
	}, nil
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Fresh tells whether the session was started by this transaction.
func (s *Session) Fresh() bool {
	return s.fresh
}

// Dirty tells whether the session was modified since it was loaded.
func (s *Session) Dirty() bool {
	return s.dirty
}

func (s *Session) Get(key string) (any, bool) {
	value, found := s.data[key]
	return value, found
}

func (s *Session) Set(key string, value any) {
	s.data[key] = value
	s.dirty = true
}

func (s *Session) Delete(key string) {
	if _, found := s.data[key]; found {
		delete(s.data, key)
		s.dirty = true
	}
}

// Keys returns the keys sorted.
func (s *Session) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}

// All exposes the underlying data.
func (s *Session) All() Data {
	return s.data
}

// Clear drops all the values and removes the session from the store on save.
func (s *Session) Clear() {
	s.data = make(Data)
	s.dirty = true
	s.deleted = true
}

// Cleared tells whether the session was cleared and is still empty, so Save is going
// to remove it.
func (s *Session) Cleared() bool {
	return s.deleted && len(s.data) == 0
}

// Save writes the session through the store. Untouched sessions aren't written, and
// cleared ones are removed.
func (s *Session) Save() error {
	if !s.dirty {
		return nil
	}

	if s.Cleared() {
		if err := s.store.Delete(s.id); err != nil {
			return err
		}
	} else if err := s.store.Save(s.id, s.data, s.ttl); err != nil {
		return err
	}

	s.dirty, s.deleted = false, false
	return nil
}
