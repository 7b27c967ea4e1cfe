package http

import "sort"

// Blackboard is a scratch key-value storage living as long as the request does. It's
// used to pass computed values between the dispatcher, controllers and views without
// widening the Request itself.
type Blackboard struct {
	values map[string]any
}

func NewBlackboard() *Blackboard {
	return &Blackboard{
		values: make(map[string]any),
	}
}

func (b *Blackboard) Set(key string, value any) *Blackboard {
	b.values[key] = value
	return b
}

func (b *Blackboard) Get(key string) (any, bool) {
	value, found := b.values[key]
	return value, found
}

// Value returns the value of the key or nil.
func (b *Blackboard) Value(key string) any {
	return b.values[key]
}

func (b *Blackboard) Has(key string) bool {
	_, found := b.values[key]
	return found
}

func (b *Blackboard) Delete(key string) *Blackboard {
	delete(b.values, key)
	return b
}

// Keys returns the keys sorted.
func (b *Blackboard) Keys() []string {
	keys := make([]string, 0, len(b.values))
	for key := range b.values {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}

func (b *Blackboard) Len() int {
	return len(b.values)
}
