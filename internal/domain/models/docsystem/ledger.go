package docsystem

import "encoding/json"

// Ledger is an append-only sequence. Append returns a new Ledger and never
// touches the receiver's backing array, so snapshots that share a ledger
// cannot observe each other's appends.
type Ledger[T any] struct {
	entries []T
}

// NewLedger builds a ledger holding a copy of entries.
func NewLedger[T any](entries ...T) Ledger[T] {
	if len(entries) == 0 {
		return Ledger[T]{}
	}
	cp := make([]T, len(entries))
	copy(cp, entries)
	return Ledger[T]{entries: cp}
}

// Append returns a ledger with e added at the end.
func (l Ledger[T]) Append(e T) Ledger[T] {
	next := make([]T, len(l.entries), len(l.entries)+1)
	copy(next, l.entries)
	return Ledger[T]{entries: append(next, e)}
}

// Len returns the number of entries.
func (l Ledger[T]) Len() int {
	return len(l.entries)
}

// At returns the entry at index i. It panics if i is out of range.
func (l Ledger[T]) At(i int) T {
	return l.entries[i]
}

// Latest returns the last entry, or false when the ledger is empty.
func (l Ledger[T]) Latest() (T, bool) {
	if len(l.entries) == 0 {
		var zero T
		return zero, false
	}
	return l.entries[len(l.entries)-1], true
}

// Entries returns a copy of all entries in append order.
func (l Ledger[T]) Entries() []T {
	cp := make([]T, len(l.entries))
	copy(cp, l.entries)
	return cp
}

// MarshalJSON encodes the ledger as a plain JSON array.
func (l Ledger[T]) MarshalJSON() ([]byte, error) {
	if l.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.entries)
}

// UnmarshalJSON decodes a JSON array (or null) into the ledger.
func (l *Ledger[T]) UnmarshalJSON(data []byte) error {
	var entries []T
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		entries = nil
	}
	l.entries = entries
	return nil
}
