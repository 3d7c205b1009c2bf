package bson

// Document is an ordered, unique-keyed mapping from UTF-8 key to Value.
// Construction preserves insertion order; re-setting an existing key
// keeps its original position (last-write-wins on the *value*, not the
// position) while keys within a document stay unique.
//
// Document is immutable after construction: Set and Delete return a new
// Document that shares the unchanged *Value payloads* with the receiver —
// composite values (nested Document/Array) are reference-shared, not
// deep-copied, which is safe because those too are immutable.
type Document struct {
	keys   []string
	values []Value
	index  map[string]int
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{index: make(map[string]int)}
}

// NewDocumentFromPairs builds a document from alternating key/value pairs,
// applying the same last-write-wins-on-position rule as repeated Set calls.
func NewDocumentFromPairs(pairs ...any) *Document {
	d := NewDocument()
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		val, _ := pairs[i+1].(Value)
		d = d.Set(key, val)
	}
	return d
}

// Len returns the number of entries.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns a copy of the document's keys in insertion order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// TryGet returns the value for key and true if present, or the zero Value
// and false otherwise. This is the strict accessor used by mapping's
// reflection fallback and by catalog's validation.
func (d *Document) TryGet(key string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	i, ok := d.index[key]
	if !ok {
		return Value{}, false
	}
	return d.values[i], true
}

// Get returns the value for key, or Null if the key is absent.
func (d *Document) Get(key string) Value {
	if v, ok := d.TryGet(key); ok {
		return v
	}
	return Null
}

// Set returns a new Document with key bound to v. If key already exists,
// its position is preserved and only its value changes; otherwise the pair
// is appended.
func (d *Document) Set(key string, v Value) *Document {
	if d == nil {
		d = NewDocument()
	}
	if i, ok := d.index[key]; ok {
		out := &Document{
			keys:   d.keys,
			values: append([]Value(nil), d.values...),
			index:  d.index,
		}
		out.values[i] = v
		return out
	}

	out := &Document{
		keys:   append(append([]string(nil), d.keys...), key),
		values: append(append([]Value(nil), d.values...), v),
		index:  make(map[string]int, len(d.index)+1),
	}
	for k, i := range d.index {
		out.index[k] = i
	}
	out.index[key] = len(out.keys) - 1
	return out
}

// Delete returns a new Document without key. If key is absent, d is
// returned unchanged (same pointer, no allocation).
func (d *Document) Delete(key string) *Document {
	if d == nil {
		return NewDocument()
	}
	if _, ok := d.index[key]; !ok {
		return d
	}
	out := NewDocument()
	for i, k := range d.keys {
		if k == key {
			continue
		}
		out = out.Set(k, d.values[i])
	}
	return out
}

// Range calls fn for every entry in insertion order, stopping early if fn
// returns false.
func (d *Document) Range(fn func(key string, v Value) bool) {
	if d == nil {
		return
	}
	for i, k := range d.keys {
		if !fn(k, d.values[i]) {
			return
		}
	}
}
