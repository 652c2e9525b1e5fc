// Package ledger holds the record managers: pure functions that take a
// snapshot of a collection and return a new one.
package ledger

// Record is anything addressable by id.
type Record interface {
	RecordID() string
}

// Collection is an ordered list of records, newest first.
type Collection[T Record] []T

// Add returns a new collection with rec in front. Ids are not checked for
// uniqueness.
func (c Collection[T]) Add(rec T) Collection[T] {
	out := make(Collection[T], 0, len(c)+1)
	out = append(out, rec)
	return append(out, c...)
}

// Update returns a copy with every entry whose id matches rec replaced by rec.
// A missing id yields an unchanged copy.
func (c Collection[T]) Update(rec T) Collection[T] {
	out := make(Collection[T], len(c))
	for i, it := range c {
		if it.RecordID() == rec.RecordID() {
			out[i] = rec
			continue
		}
		out[i] = it
	}
	return out
}

// Delete returns a copy without the entries carrying id.
func (c Collection[T]) Delete(id string) Collection[T] {
	out := make(Collection[T], 0, len(c))
	for _, it := range c {
		if it.RecordID() != id {
			out = append(out, it)
		}
	}
	return out
}

// Map returns a copy with fn applied to the entries carrying id.
func (c Collection[T]) Map(id string, fn func(T) T) Collection[T] {
	out := make(Collection[T], len(c))
	for i, it := range c {
		if it.RecordID() == id {
			it = fn(it)
		}
		out[i] = it
	}
	return out
}

// Find returns the first entry with id.
func (c Collection[T]) Find(id string) (T, bool) {
	for _, it := range c {
		if it.RecordID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}
