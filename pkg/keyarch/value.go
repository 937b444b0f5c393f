package keyarch

import "bytes"

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindMap Kind = iota
	KindSequence
	KindBlob
	KindText
	KindInteger
	KindBoolean
	KindNull
)

// Value is one node of a decoded archive tree.
type Value interface {
	Kind() Kind
}

type mapPair struct {
	key   string
	value Value
}

// Map is an ordered collection of unique string keys. Key order is
// significant: it survives encode and decode unchanged.
type Map struct {
	pairs []mapPair
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{}
}

// Kind implements Value.
func (m *Map) Kind() Kind { return KindMap }

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.pairs) }

// Keys returns the keys in stored order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.key
	}
	return keys
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	for _, p := range m.pairs {
		if p.key == key {
			return p.value, true
		}
	}
	return nil, false
}

// Set replaces the value under key in place, keeping its position, or
// appends a new entry when the key is absent.
func (m *Map) Set(key string, v Value) {
	for i, p := range m.pairs {
		if p.key == key {
			m.pairs[i].value = v
			return
		}
	}
	m.pairs = append(m.pairs, mapPair{key: key, value: v})
}

// Delete removes the entry under key and reports whether it existed.
func (m *Map) Delete(key string) bool {
	for i, p := range m.pairs {
		if p.key == key {
			m.pairs = append(m.pairs[:i], m.pairs[i+1:]...)
			return true
		}
	}
	return false
}

// Sequence is an ordered list of values.
type Sequence struct {
	values []Value
}

// NewSequence returns a Sequence holding the given values.
func NewSequence(values ...Value) *Sequence {
	return &Sequence{values: values}
}

// Kind implements Value.
func (s *Sequence) Kind() Kind { return KindSequence }

// Len returns the number of values.
func (s *Sequence) Len() int { return len(s.values) }

// At returns the value at index i.
func (s *Sequence) At(i int) Value { return s.values[i] }

// Append adds v at the end.
func (s *Sequence) Append(v Value) {
	s.values = append(s.values, v)
}

// RemoveAt removes the value at index i, shifting later values down.
func (s *Sequence) RemoveAt(i int) {
	s.values = append(s.values[:i], s.values[i+1:]...)
}

// Values returns the backing slice in stored order.
func (s *Sequence) Values() []Value { return s.values }

// Blob is a raw byte sequence.
type Blob []byte

// Kind implements Value.
func (Blob) Kind() Kind { return KindBlob }

// Text is a UTF-8 string.
type Text string

// Kind implements Value.
func (Text) Kind() Kind { return KindText }

// Integer is a 64-bit signed integer.
type Integer int64

// Kind implements Value.
func (Integer) Kind() Kind { return KindInteger }

// Boolean is a true/false scalar.
type Boolean bool

// Kind implements Value.
func (Boolean) Kind() Kind { return KindBoolean }

// Null is the absent-value scalar.
type Null struct{}

// Kind implements Value.
func (Null) Kind() Kind { return KindNull }

// Equal reports structural equality of two values. Map comparison is
// order-sensitive, matching consumers that compare archives structurally.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *Map:
		bv := b.(*Map)
		if len(av.pairs) != len(bv.pairs) {
			return false
		}
		for i, p := range av.pairs {
			if p.key != bv.pairs[i].key || !Equal(p.value, bv.pairs[i].value) {
				return false
			}
		}
		return true
	case *Sequence:
		bv := b.(*Sequence)
		if len(av.values) != len(bv.values) {
			return false
		}
		for i, v := range av.values {
			if !Equal(v, bv.values[i]) {
				return false
			}
		}
		return true
	case Blob:
		return bytes.Equal(av, b.(Blob))
	case Text:
		return av == b.(Text)
	case Integer:
		return av == b.(Integer)
	case Boolean:
		return av == b.(Boolean)
	case Null:
		return true
	}
	return false
}
