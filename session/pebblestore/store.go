// Package pebblestore keeps sessions in a Pebble database, so they survive restarts.
package pebblestore

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/indigo-web/waves/session"
	json "github.com/json-iterator/go"
)

const keyPrefix = "session:"

// record is what's stored under the session key. Expires is in unix nanoseconds, zero
// meaning never.
type record struct {
	Expires int64        `json:"expires,omitempty"`
	Data    session.Data `json:"data"`
}

func (r record) expiry() time.Time {
	if r.Expires == 0 {
		return time.Time{}
	}

	return time.Unix(0, r.Expires)
}

// Store is a session.Store on top of Pebble. Values are encoded as JSON, so only
// JSON-representable session values survive the round trip.
type Store struct {
	db  *pebble.DB
	now func() time.Time
}

// Open opens (or creates) the database in the directory.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebblestore: open %s: %w", dir, err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Load implements session.Store. Expired sessions are removed on the way.
func (s *Store) Load(id string) (session.Data, error) {
	value, closer, err := s.db.Get(key(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, session.ErrNotFound
		}

		return nil, err
	}

	var rec record
	err = json.Unmarshal(value, &rec)
	_ = closer.Close()
	if err != nil {
		return nil, fmt.Errorf("pebblestore: session %s: %w", id, err)
	}

	if session.Expired(rec.expiry(), s.now()) {
		if err = s.Delete(id); err != nil {
			return nil, err
		}

		return nil, session.ErrNotFound
	}

	return rec.Data, nil
}

func (s *Store) Save(id string, data session.Data, ttl time.Duration) error {
	rec := record{Data: data}
	if expires := session.Expiry(s.now(), ttl); !expires.IsZero() {
		rec.Expires = expires.UnixNano()
	}

	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Set(key(id), value, pebble.Sync)
}

func (s *Store) Delete(id string) error {
	return s.db.Delete(key(id), pebble.Sync)
}

// Sweep implements session.Sweeper. Unreadable records are left alone.
func (s *Store) Sweep(now time.Time) (int, error) {
	prefix := []byte(keyPrefix)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: prefix})
	if err != nil {
		return 0, err
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	removed := 0
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), prefix) {
			break
		}

		var rec record
		if json.Unmarshal(iter.Value(), &rec) != nil || !session.Expired(rec.expiry(), now) {
			continue
		}

		if err = batch.Delete(append([]byte(nil), iter.Key()...), nil); err != nil {
			_ = iter.Close()
			return 0, err
		}
		removed++
	}

	if err = iter.Close(); err != nil {
		return 0, err
	}

	if removed == 0 {
		return 0, nil
	}

	return removed, batch.Commit(pebble.Sync)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}
