package bson

import "bytes"

// Equals implements structural equality: two Values are equal only
// when their Kind matches exactly (no cross-numeric-kind equality, unlike
// CompareTo) and their payloads match. Document/Array equality requires the
// same keys/elements in the same order.
func (v Value) Equals(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull, KindMinKey, KindMaxKey:
		return true
	case KindInt32:
		return v.i32 == other.i32
	case KindInt64, KindDateTime, KindTimestamp:
		return v.i64 == other.i64
	case KindDouble:
		return v.f64 == other.f64
	case KindDecimal128:
		return v.dec == other.dec
	case KindBoolean:
		return v.b == other.b
	case KindString, KindSymbol, KindJavaScript:
		return v.str == other.str
	case KindObjectID:
		return v.oid == other.oid
	case KindBinary:
		return v.bin.Subtype == other.bin.Subtype && bytes.Equal(v.bin.Data, other.bin.Data)
	case KindRegularExpression:
		return v.re.Pattern == other.re.Pattern && v.re.Options == other.re.Options
	case KindJavaScriptWithScope:
		return v.str == other.str && v.jsScope.Equals(other.jsScope)
	case KindDocument:
		return v.doc.Equals(other.doc)
	case KindArray:
		return v.arr.Equals(other.arr)
	default:
		return false
	}
}

// Equals reports whether d and o hold the same keys, in the same order,
// with equal values.
func (d *Document) Equals(o *Document) bool {
	if d.Len() != o.Len() {
		return false
	}
	for i := 0; i < d.Len(); i++ {
		if d.keys[i] != o.keys[i] {
			return false
		}
		if !d.values[i].Equals(o.values[i]) {
			return false
		}
	}
	return true
}

// Equals reports whether a and o hold the same elements in the same order.
func (a *Array) Equals(o *Array) bool {
	if a.Len() != o.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !a.values[i].Equals(o.values[i]) {
			return false
		}
	}
	return true
}
