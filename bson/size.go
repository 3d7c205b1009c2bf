package bson

import "strconv"

// SizeOf returns the exact number of bytes v's payload occupies on the
// wire, not counting the element header (type byte + key cstring) that
// precedes it inside a parent document. Writer pre-computes every
// Document/Array size with this function before emitting a single byte.
// The reader does not call SizeOf: it checks each declared int32 length
// against the element boundaries it actually walks.
func SizeOf(v Value) int {
	switch v.kind {
	case KindNull, KindMinKey, KindMaxKey:
		return 0
	case KindBoolean:
		return 1
	case KindInt32:
		return 4
	case KindInt64, KindDateTime, KindTimestamp, KindDouble:
		return 8
	case KindDecimal128:
		return 16
	case KindObjectID:
		return 12
	case KindString, KindSymbol, KindJavaScript:
		return stringSize(v.str)
	case KindBinary:
		return 4 + 1 + len(v.bin.Data)
	case KindRegularExpression:
		return cstringSize(v.re.Pattern) + cstringSize(v.re.Options)
	case KindDocument:
		return DocumentSize(v.doc)
	case KindArray:
		return ArraySize(v.arr)
	case KindJavaScriptWithScope:
		return 4 + stringSize(v.str) + DocumentSize(v.jsScope)
	default:
		return 0
	}
}

// stringSize returns the size of s encoded as a BSON "string" value: an
// int32 length prefix (counting the trailing NUL) followed by the UTF-8
// bytes and the NUL itself.
func stringSize(s string) int {
	return 4 + len(s) + 1
}

// cstringSize returns the size of s encoded as a bare BSON cstring (no
// length prefix), used by RegularExpression's pattern/options: len(s) + 1
// for the trailing NUL.
func cstringSize(s string) int {
	return len(s) + 1
}

// elementSize returns the size of one document element: type byte + key
// cstring + value payload.
func elementSize(key string, v Value) int {
	return 1 + len(key) + 1 + SizeOf(v)
}

// DocumentSize returns the full wire size of d, including its int32 length
// prefix and trailing NUL terminator.
func DocumentSize(d *Document) int {
	total := 4 + 1
	if d == nil {
		return total
	}
	for i, k := range d.keys {
		total += elementSize(k, d.values[i])
	}
	return total
}

// ArraySize returns the full wire size of a, encoded identically to a
// Document whose keys are the decimal string indices "0", "1", ....
func ArraySize(a *Array) int {
	total := 4 + 1
	if a == nil {
		return total
	}
	for i, v := range a.values {
		total += elementSize(strconv.Itoa(i), v)
	}
	return total
}
