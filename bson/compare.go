package bson

import "bytes"

// CompareTo implements the total order over Value: Null <
// MinKey < numerics (compared by mathematical value) < String/Symbol <
// Document < Array < Binary < ObjectID < Boolean < DateTime < Timestamp <
// RegularExpression < JavaScript < JavaScriptWithScope < MaxKey. Within a
// rank, ties are broken by the kind-specific comparison described below.
func (v Value) CompareTo(other Value) int {
	r1, r2 := v.kind.orderRank(), other.kind.orderRank()
	if r1 != r2 {
		return r1 - r2
	}

	switch v.kind {
	case KindNull, KindMinKey, KindMaxKey:
		return 0
	case KindInt32, KindInt64, KindDouble, KindDecimal128:
		a, b := v.numericValue(), other.numericValue()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	case KindString, KindSymbol, KindJavaScript:
		return compareStrings(v.str, other.str)
	case KindDocument:
		return v.doc.compareTo(other.doc)
	case KindArray:
		return v.arr.compareTo(other.arr)
	case KindBinary:
		if v.bin.Subtype != other.bin.Subtype {
			return int(v.bin.Subtype) - int(other.bin.Subtype)
		}
		return bytes.Compare(v.bin.Data, other.bin.Data)
	case KindObjectID:
		return bytes.Compare(v.oid[:], other.oid[:])
	case KindBoolean:
		switch {
		case v.b == other.b:
			return 0
		case !v.b:
			return -1
		default:
			return 1
		}
	case KindDateTime, KindTimestamp:
		switch {
		case v.i64 < other.i64:
			return -1
		case v.i64 > other.i64:
			return 1
		default:
			return 0
		}
	case KindRegularExpression:
		if c := compareStrings(v.re.Pattern, other.re.Pattern); c != 0 {
			return c
		}
		return compareStrings(v.re.Options, other.re.Options)
	case KindJavaScriptWithScope:
		if c := compareStrings(v.str, other.str); c != 0 {
			return c
		}
		return v.jsScope.compareTo(other.jsScope)
	default:
		return 0
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareTo orders documents lexicographically by (key, value) pairs in
// insertion order, then by length.
func (d *Document) compareTo(o *Document) int {
	n := d.Len()
	if o.Len() < n {
		n = o.Len()
	}
	for i := 0; i < n; i++ {
		if c := compareStrings(d.keys[i], o.keys[i]); c != 0 {
			return c
		}
		if c := d.values[i].CompareTo(o.values[i]); c != 0 {
			return c
		}
	}
	return d.Len() - o.Len()
}

// compareTo orders arrays element-wise, then by length.
func (a *Array) compareTo(o *Array) int {
	n := a.Len()
	if o.Len() < n {
		n = o.Len()
	}
	for i := 0; i < n; i++ {
		if c := a.values[i].CompareTo(o.values[i]); c != 0 {
			return c
		}
	}
	return a.Len() - o.Len()
}
