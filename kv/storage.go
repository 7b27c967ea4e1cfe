package kv

import (
	"iter"

	"github.com/indigo-web/utils/strcomp"
)

type Pair struct {
	Key, Value string
}

// Storage is an associative structure for storing (string, string) pairs. It acts as a map but
// uses linear search instead, which proves to be more efficient on relatively low amount of
// entries, which often enough is the case for query parameters, form fields and headers.
// Keys are compared case-insensitively, unless the storage is case-sensitive.
type Storage struct {
	pairs []Pair
	exact bool
}

func New() *Storage {
	return new(Storage)
}

// NewCaseSensitive returns a storage comparing keys byte by byte, as query and form
// parameter names must be.
func NewCaseSensitive() *Storage {
	return &Storage{exact: true}
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// NewFromMap returns a new instance with already inserted values from given map.
// Note: as maps are unordered, resulting underlying structure will also contain unordered
// pairs.
func NewFromMap(m map[string][]string) *Storage {
	kv := NewPrealloc(len(m))

	for key, values := range m {
		for _, value := range values {
			kv.Add(key, value)
		}
	}

	return kv
}

// Add adds a new pair of key and value.
func (s *Storage) Add(key, value string) *Storage {
	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return s
}

// Set replaces all the values of the key by a single one, taking the place of the
// first entry. If there was no such key, it's added.
func (s *Storage) Set(key, value string) *Storage {
	for i, pair := range s.pairs {
		if s.equal(pair.Key, key) {
			s.pairs[i] = Pair{Key: key, Value: value}
			tail := &Storage{pairs: s.pairs[i+1:], exact: s.exact}
			tail.Delete(key)
			s.pairs = s.pairs[:i+1+len(tail.pairs)]
			return s
		}
	}

	return s.Add(key, value)
}

// Delete removes all the entries of the key, preserving the order of the rest.
func (s *Storage) Delete(key string) *Storage {
	n := 0
	for _, pair := range s.pairs {
		if !s.equal(pair.Key, key) {
			s.pairs[n] = pair
			n++
		}
	}

	s.pairs = s.pairs[:n]
	return s
}

// Value returns the first value, corresponding to the key. Otherwise, empty string is returned
func (s *Storage) Value(key string) string {
	return s.ValueOr(key, "")
}

// ValueOr returns either the first value corresponding to the key or custom value, defined
// via the second parameter.
func (s *Storage) ValueOr(key, or string) string {
	value, found := s.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found. If it wasn't, it'll
// be an empty string.
func (s *Storage) Get(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if s.equal(key, pair.Key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Last returns the last value of the key. Useful when later entries must override
// earlier ones, as with merged query and form parameters.
func (s *Storage) Last(key string) (value string, found bool) {
	for i := len(s.pairs) - 1; i >= 0; i-- {
		if s.equal(key, s.pairs[i].Key) {
			return s.pairs[i].Value, true
		}
	}

	return "", false
}

// Values returns all values by the key. Returns nil if key doesn't exist.
func (s *Storage) Values(key string) (values []string) {
	for _, pair := range s.pairs {
		if s.equal(pair.Key, key) {
			values = append(values, pair.Value)
		}
	}

	return values
}

// Keys returns all unique presented keys in order of their first appearance.
func (s *Storage) Keys() (keys []string) {
	for _, pair := range s.pairs {
		if s.contains(keys, pair.Key) {
			continue
		}

		keys = append(keys, pair.Key)
	}

	return keys
}

// Pairs returns an iterator over the pairs.
func (s *Storage) Pairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key, pair.Value) {
				break
			}
		}
	}
}

// Has indicates, whether there's an entry of the key.
func (s *Storage) Has(key string) bool {
	_, found := s.Get(key)
	return found
}

// Len returns a number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

// Clone creates a deep copy, which may be used later or stored somewhere safely.
func (s *Storage) Clone() *Storage {
	return &Storage{
		pairs: clone(s.pairs),
		exact: s.exact,
	}
}

// Merge appends all the pairs of other storage. Keys keep being compared the way the
// receiver does.
func (s *Storage) Merge(other *Storage) *Storage {
	s.pairs = append(s.pairs, other.pairs...)
	return s
}

// Expose exposes the underlying pairs slice.
func (s *Storage) Expose() []Pair {
	return s.pairs
}

// Clear all the entries. However, all the allocated space won't be freed.
func (s *Storage) Clear() *Storage {
	s.pairs = s.pairs[:0]
	return s
}

func (s *Storage) equal(a, b string) bool {
	if s.exact {
		return a == b
	}

	return strcomp.EqualFold(a, b)
}

func (s *Storage) contains(collection []string, key string) bool {
	for _, element := range collection {
		if s.equal(element, key) {
			return true
		}
	}

	return false
}

func clone[T any](source []T) []T {
	if len(source) == 0 {
		return nil
	}

	newSlice := make([]T, len(source))
	copy(newSlice, source)

	return newSlice
}
